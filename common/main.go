package common

import (
	"regexp"

	"github.com/pkg/errors"
)

// AMQPSettings represents the settings that we require in order to connect to the AMQP exchange.
type AMQPSettings struct {
	URI           string
	ExchangeName  string
	ExchangeType  string
	QueueName     string
	PrefetchCount int
}

var accountAddressRegexp = regexp.MustCompile("^0x[0-9a-fA-F]{40}$")

// ValidateAccountAddress returns an error if the format of an account address is invalid.
func ValidateAccountAddress(address string) error {
	if !accountAddressRegexp.MatchString(address) {
		return errors.Errorf("invalid account address: %q", address)
	}
	return nil
}
