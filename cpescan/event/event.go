package event

import "github.com/wagoodman/go-partybus"

const (
	AppUpdateAvailable            partybus.EventType = "cpescan-app-update-available"
	UpdateVulnerabilityDatabase   partybus.EventType = "cpescan-update-vulnerability-database"
	VulnerabilityMatchingStarted  partybus.EventType = "cpescan-vulnerability-matching-started"
	VulnerabilityMatchingFinished partybus.EventType = "cpescan-vulnerability-matching-finished"
)
