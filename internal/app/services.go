package app

import (
	"go.uber.org/fx"

	"github.com/Alijeyrad/moksha_web/config"
	"github.com/Alijeyrad/moksha_web/internal/service/booking"
	"github.com/Alijeyrad/moksha_web/internal/service/directory"
	"github.com/Alijeyrad/moksha_web/internal/service/lookup"
	"github.com/Alijeyrad/moksha_web/internal/service/notify"
	"github.com/Alijeyrad/moksha_web/internal/service/reschedule"
	"github.com/Alijeyrad/moksha_web/pkg/clinicapi"
	"github.com/Alijeyrad/moksha_web/pkg/handoff"
)

// rescheduleMailbox names the lookup-to-reschedule handoff.
const rescheduleMailbox = "reschedule"

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideRescheduleMailbox,
		ProvideDirectoryService,
		ProvideBookingService,
		ProvideLookupService,
		ProvideRescheduleService,
	),
)

func ProvideRescheduleMailbox(store handoff.Storage, cfg *config.Config) *handoff.Mailbox[clinicapi.Appointment] {
	return handoff.New[clinicapi.Appointment](store, rescheduleMailbox, cfg.Handoff.TTL())
}

func ProvideDirectoryService(api *clinicapi.Client) directory.Service {
	return directory.New(api)
}

func ProvideBookingService(api *clinicapi.Client, n notify.Notifier, cfg *config.Config) booking.Service {
	return booking.New(api, booking.Options{
		Location:      cfg.Clinic.Location(),
		RedirectAfter: cfg.Booking.SuccessRedirect(),
		Notifier:      n,
	})
}

func ProvideLookupService(
	api *clinicapi.Client,
	mailbox *handoff.Mailbox[clinicapi.Appointment],
	n notify.Notifier,
	cfg *config.Config,
) lookup.Service {
	return lookup.New(api, mailbox, lookup.Options{
		RedirectAfter: cfg.Booking.CancelRedirect(),
		Notifier:      n,
	})
}

func ProvideRescheduleService(
	api *clinicapi.Client,
	slots booking.Service,
	mailbox *handoff.Mailbox[clinicapi.Appointment],
	n notify.Notifier,
	cfg *config.Config,
) reschedule.Service {
	return reschedule.New(api, slots, mailbox, reschedule.Options{
		FallbackDoctorID: cfg.Booking.FallbackDoctorID,
		RedirectAfter:    cfg.Booking.RescheduleRedirect(),
		Notifier:         n,
	})
}
