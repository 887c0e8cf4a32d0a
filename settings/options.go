package settings

type ServiceOption func(*Service)

func WithPeer(p Peer) ServiceOption {
	return func(svc *Service) {
		svc.peer = p
	}
}

func WithAlerter(a Alerter) ServiceOption {
	return func(svc *Service) {
		svc.alerter = a
	}
}
