package testutil

// Fixed identifiers shared by integration tests.
const (
	TenantID   = "tenant-001"
	MerchantID = "merchant-001"
	BrokerID   = "broker-001"
	ActorID    = "ops-001"
)
