package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixFleetStats CachePrefix = "FLEET_STATS_"
	CachePrefixUsername   CachePrefix = "USERNAME_"
)
