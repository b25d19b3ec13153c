// Package redis wraps go-redis client setup with environment-driven
// configuration, startup retries and a readiness probe.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// The subscription cache decorator takes the returned client directly; this
// package only handles connectivity.
package redis
