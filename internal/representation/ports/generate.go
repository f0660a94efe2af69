package ports

//go:generate mockgen -destination=mocks/mocks.go -package=mocks counsel/internal/representation/ports IdentityPort,CasePort,AuditPort
