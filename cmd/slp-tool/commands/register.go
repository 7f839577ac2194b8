package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openlighting/ola-go/pkg/slp/wire"
)

var errTargetRequired = errors.New("a -target agent is required")

// RunRegister registers url with the agent at target:port.
func RunRegister(url, scopeList, attrs string, lifetime uint, target string, port int, wait time.Duration) error {
	if lifetime == 0 || lifetime > 0xFFFF {
		return fmt.Errorf("lifetime %d out of range 1..65535", lifetime)
	}
	scopes, err := parseScopeList(scopeList)
	if err != nil {
		return err
	}
	dst, err := resolveTarget(target, port)
	if err != nil {
		return err
	}
	if dst == nil {
		return errTargetRequired
	}

	ua, closeFn, err := newUserAgent(scopes)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	err = ua.Register(ctx, &wire.ServiceRegistration{
		Entry:       wire.URLEntry{Lifetime: uint16(lifetime), URL: url},
		ServiceType: serviceTypeOf(url),
		Scopes:      scopes,
		Attributes:  attrs,
	}, dst)
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s for %ds in scopes %s\n", url, lifetime, scopes)
	return nil
}

// RunDeregister withdraws url from the agent at target:port.
func RunDeregister(url, scopeList, target string, port int, wait time.Duration) error {
	scopes, err := parseScopeList(scopeList)
	if err != nil {
		return err
	}
	dst, err := resolveTarget(target, port)
	if err != nil {
		return err
	}
	if dst == nil {
		return errTargetRequired
	}

	ua, closeFn, err := newUserAgent(scopes)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	err = ua.Deregister(ctx, &wire.ServiceDeregistration{
		Scopes: scopes,
		Entry:  wire.URLEntry{URL: url},
	}, dst)
	if err != nil {
		return err
	}

	fmt.Printf("Deregistered %s\n", url)
	return nil
}
