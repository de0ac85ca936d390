package config

// section is one level of the defaults tree.
type section = map[string]any

// defaults is the configuration the service runs with when no file or
// environment variable says otherwise: everything in memory, nothing
// external enabled. Every settable key appears here, empty if it has no
// default, so environment overrides can be resolved against it.
func defaults() section {
	return section{
		"app": section{
			"name":        "quotevault",
			"version":     "dev",
			"environment": "local",
		},
		"server": section{
			"host":             "0.0.0.0",
			"port":             8080,
			"read_timeout":     "30s",
			"write_timeout":    "30s",
			"idle_timeout":     "2m",
			"shutdown_timeout": "10s",
			"max_request_size": 1 << 20,
		},
		"log": section{
			"level":  "info",
			"format": "json",
			"file": section{
				"enabled":     false,
				"path":        "./logs/quotevault.log",
				"max_size":    100,
				"max_backups": 3,
				"max_age":     28,
				"compress":    true,
			},
		},
		"telemetry": section{
			"enabled":       false,
			"endpoint":      "",
			"service_name":  "quotevault",
			"sampling_rate": 1.0,
			"insecure":      true,
		},
		"auth": section{
			"mode":           "header",
			"subject_header": "X-User-ID",
		},
		"client": section{
			"timeout": "30s",
			"retry": section{
				"max_attempts":     3,
				"initial_interval": "100ms",
				"max_interval":     "5s",
				"multiplier":       2.0,
				"jitter_factor":    0.25,
			},
			"circuit_breaker": section{
				"max_failures":    5,
				"timeout":         "30s",
				"half_open_limit": 3,
			},
			"transport": section{
				"max_idle_conns":          100,
				"max_idle_conns_per_host": 10,
				"idle_conn_timeout":       "90s",
			},
		},
		"store": section{
			"driver":    "memory",
			"seed_file": "",
		},
		"database": section{
			"dsn":                 "",
			"max_conns":           25,
			"min_conns":           5,
			"max_conn_lifetime":   "1h",
			"max_conn_idle_time":  "30m",
			"health_check_period": "5m",
			"migrate":             false,
		},
		"rest": section{
			"base_url":     "",
			"api_key":      "",
			"schema":       "public",
			"service_name": "postgrest",
		},
		"cache": section{
			"driver": "memory",
		},
		"redis": section{
			"addr":        "localhost:6379",
			"password":    "",
			"db":          0,
			"key_prefix":  "quotevault:",
			"ttl":         "0s",
			"pool_size":   10,
			"max_retries": 3,
		},
		"sqlite": section{
			"path": "./data/quotevault.db",
		},
		"firebase": section{
			"enabled":          false,
			"project_id":       "",
			"credentials_file": "",
		},
		"notifications": section{
			"enabled":         false,
			"timezone":        "UTC",
			"deliver_timeout": "30s",
		},
		"share": section{
			"enabled":     false,
			"export_dir":  "./data/exports",
			"outbox_dir":  "./data/outbox",
			"gallery_dir": "./data/gallery",
			"card_scale":  3,
		},
		"session": section{
			"idle_ttl":       "30m",
			"sweep_interval": "1m",
		},
		"cors": section{
			"enabled":       false,
			"allow_origins": []string{},
			"max_age":       "12h",
		},
	}
}
