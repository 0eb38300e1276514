package worker

// HandlerRegistrar subscribes event handlers to a dispatcher.
type HandlerRegistrar interface {
	RegisterHandlers()
}

// StartNotificationWorker registers notification handlers.
func StartNotificationWorker(registrar HandlerRegistrar) {
	if registrar == nil {
		return
	}
	registrar.RegisterHandlers()
}
