// Package redis manages Redis connections for the platform.
//
// It exposes an environment-driven Config, a Connect helper with bounded
// retries for containerised deployments where Redis may come up after the
// service, and a Healthcheck function suitable for readiness probes.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
package redis
