package log

// Option modifies the configuration of a Logger under construction.
type Option func(config) config

func apply(cfg config, opts ...Option) config {
	for _, opt := range opts {
		if opt != nil {
			cfg = opt(cfg)
		}
	}

	return cfg
}
