package domain

// AuthKind tells whether a shop already has a stored token
type AuthKind string

const (
	// AuthKindAuthenticated - a token row exists for the shop
	AuthKindAuthenticated AuthKind = "AUTHENTICATED"
	// AuthKindNeedsAuth - no token yet, the browser must go through OAuth
	AuthKindNeedsAuth AuthKind = "NEEDS_AUTH"
)

// InstallResult labels the outcome of one OAuth callback
type InstallResult string

const (
	InstallResultSuccess       InstallResult = "success"
	InstallResultConfiguration InstallResult = "configuration_error"
	InstallResultSignature     InstallResult = "signature_error"
	InstallResultExchange      InstallResult = "exchange_error"
	InstallResultPersistence   InstallResult = "persistence_error"
)

// GatewayOutcome labels the outcome of one GraphQL passthrough call
type GatewayOutcome string

const (
	GatewayOutcomeOK        GatewayOutcome = "ok"
	GatewayOutcomeTransport GatewayOutcome = "transport_error"
	GatewayOutcomeStatus    GatewayOutcome = "http_status_error"
	GatewayOutcomeParse     GatewayOutcome = "parse_error"
)
