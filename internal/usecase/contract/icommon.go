package usecasecontract

import "time"

// IAppLogger is the logging surface used by usecases.
type IAppLogger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Warningf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
}

// IConfigProvider exposes the configuration values usecases and handlers depend on.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetProfilePageSize() int
	GetStrictReactions() bool
}

// IValidator validates user supplied credentials.
type IValidator interface {
	ValidateEmail(email string) error
	ValidatePasswordStrength(password string) error
}
