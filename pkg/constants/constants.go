// Package constants holds names shared by the config loader, the CLI and the
// HTTP layer.
package constants

const (
	AppName = "moksha_web"

	ConfigName   = "config"
	ConfigFormat = "yaml"
	EnvPrefix    = "MOKSHA"

	// VisitorCookie carries the anonymous visitor id that scopes the
	// lookup-to-reschedule handoff.
	VisitorCookie = "moksha_vid"

	LocalsRequestID = "request_id"
	LocalsVisitorID = "visitor_id"

	ClinicPhoneRegion = "IN"
)
