package main

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openlighting/ola-go/pkg/config"
	"github.com/openlighting/ola-go/pkg/discovery"
	"github.com/openlighting/ola-go/pkg/persistence"
	"github.com/openlighting/ola-go/pkg/slp/agent"
	"github.com/openlighting/ola-go/pkg/slp/scope"
	"github.com/openlighting/ola-go/pkg/slp/wire"
	"github.com/openlighting/ola-go/pkg/universe"
)

// restoreState feeds a saved snapshot back into the agent. Records with
// unparsable scope lists or lapsed expiry are skipped. Returns the number of
// registrations restored.
func restoreState(sa *agent.ServiceAgent, state *persistence.DaemonState) int {
	das := sa.DirectoryAgents()
	for _, rec := range state.DirectoryAgents {
		scopes, err := scope.Parse(rec.Scopes)
		if err != nil {
			continue
		}
		das.Observe(&wire.DAAdvert{
			URL:           rec.URL,
			Scopes:        scopes,
			BootTimestamp: rec.BootTimestamp,
		})
	}

	restored := 0
	store := sa.Registrations()
	for _, rec := range state.Registrations {
		scopes, err := scope.Parse(rec.Scopes)
		if err != nil || rec.ExpiresAt.Before(time.Now()) {
			continue
		}
		store.Restore(agent.Registration{
			URL:         rec.URL,
			ServiceType: rec.ServiceType,
			Scopes:      scopes,
			Attributes:  rec.Attributes,
			ExpiresAt:   rec.ExpiresAt,
		})
		restored++
	}
	return restored
}

// saveState snapshots the agent into the state store.
func saveState(sa *agent.ServiceAgent, store *persistence.StateStore) error {
	state := &persistence.DaemonState{}

	for _, da := range sa.DirectoryAgents().List() {
		state.DirectoryAgents = append(state.DirectoryAgents, persistence.DirectoryAgentRecord{
			URL:           da.URL,
			Scopes:        da.Scopes.Escaped(),
			BootTimestamp: da.BootTimestamp,
			LastSeen:      da.LastSeen,
		})
	}

	for _, reg := range sa.Registrations().Snapshot() {
		state.Registrations = append(state.Registrations, persistence.RegistrationRecord{
			URL:         reg.URL,
			ServiceType: reg.ServiceType,
			Scopes:      reg.Scopes.Escaped(),
			Attributes:  reg.Attributes,
			ExpiresAt:   reg.ExpiresAt,
		})
	}

	return store.Save(state)
}

// startMDNS advertises the daemon as _ola._tcp. Failures are logged, not
// fatal; SLP keeps working without mDNS.
func startMDNS(cfg config.Config, scopes scope.Set, universes *universe.Store, hostname string, logger zerolog.Logger) *discovery.Advertiser {
	if cfg.DisableMDNS {
		return nil
	}

	instanceName := cfg.InstanceName
	if instanceName == "" {
		instanceName = "olad on " + hostname
	}
	if len(instanceName) > discovery.MaxInstanceNameLen {
		instanceName = instanceName[:discovery.MaxInstanceNameLen]
	}

	adv := discovery.NewAdvertiser(discovery.AdvertiserConfig{
		Interface: cfg.Interface,
		TTL:       discovery.DefaultTTL,
	})
	err := adv.Advertise(&discovery.DaemonInfo{
		InstanceName: instanceName,
		InstanceID:   uuid.NewString(),
		Scopes:       scopes,
		Version:      version,
		Universes:    universes.Count(),
		Port:         uint16(cfg.Port),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("mDNS advertisement failed")
		return nil
	}

	logger.Info().Str("instance", instanceName).Msg("advertising over mDNS")
	return adv
}
