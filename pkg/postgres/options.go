package postgres

import "time"

type Option func(*Postgres)

// MaxPoolSize caps pool connections. Non-positive sizes keep the default.
func MaxPoolSize(size int) Option {
	return func(p *Postgres) {
		if size > 0 {
			p.maxPoolSize = size
		}
	}
}

// ConnRetry sets how often the startup ping is tried and the pause between
// tries. Zero values keep the defaults.
func ConnRetry(attempts int, delay time.Duration) Option {
	return func(p *Postgres) {
		if attempts > 0 {
			p.connAttempts = attempts
		}
		if delay > 0 {
			p.connTimeout = delay
		}
	}
}
