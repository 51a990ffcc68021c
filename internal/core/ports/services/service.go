package services

// ServiceContainer groups the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Transfer TransferSvcFacade
	Account  AccountSvcFacade
}
