package roles

import "context"

// Role is one node of the role hierarchy. A blank UpperCode marks a root.
type Role struct {
	Code      string `json:"code"`
	UpperCode string `json:"upper_code,omitempty"`
}

// Provider supplies the full role catalog. Implementations typically load it
// once per request from configuration or a directory service.
type Provider interface {
	Roles(ctx context.Context) ([]Role, error)
}

// ProviderFunc adapts a function to the Provider interface.
type ProviderFunc func(ctx context.Context) ([]Role, error)

func (f ProviderFunc) Roles(ctx context.Context) ([]Role, error) { return f(ctx) }

// Static returns a Provider serving a fixed catalog.
func Static(catalog []Role) Provider {
	return ProviderFunc(func(context.Context) ([]Role, error) {
		return catalog, nil
	})
}

// Expand resolves assigned role codes into the de-duplicated set of all roles
// they imply: each assigned code plus every role reachable downward through
// the hierarchy. Assigned codes missing from the catalog contribute nothing.
//
// The traversal is iterative and keeps a visited set keyed by role code, so
// malformed catalogs containing a cycle still terminate.
func Expand(assigned []string, catalog []Role) []string {
	if len(assigned) == 0 || len(catalog) == 0 {
		return nil
	}

	known := make(map[string]struct{}, len(catalog))
	lower := make(map[string][]string, len(catalog))
	for _, r := range catalog {
		known[r.Code] = struct{}{}
		if r.UpperCode != "" {
			lower[r.UpperCode] = append(lower[r.UpperCode], r.Code)
		}
	}

	visited := make(map[string]struct{})
	var stack []string
	for _, code := range assigned {
		if _, ok := known[code]; ok {
			stack = append(stack, code)
		}
	}

	var result []string
	for len(stack) > 0 {
		code := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, seen := visited[code]; seen {
			continue
		}
		visited[code] = struct{}{}
		result = append(result, code)

		stack = append(stack, lower[code]...)
	}

	return result
}
