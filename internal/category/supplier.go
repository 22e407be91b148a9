package category

// Supplier is the closed set of known wire agencies. Feeds that resolve to
// no known agency are processed as Unknown rather than rejected.
type Supplier string

const (
	AP      Supplier = "AP"
	AAP     Supplier = "AAP"
	AFP     Supplier = "AFP"
	PA      Supplier = "PA"
	Reuters Supplier = "REUTERS"
	Unknown Supplier = "Unknown"
)

// ResolveSupplier maps a raw source-feed label to a canonical supplier via
// case-sensitive exact match against the lookup table.
func ResolveSupplier(sourceFeed string, table map[string]Supplier) Supplier {
	if s, ok := table[sourceFeed]; ok {
		return s
	}
	return Unknown
}
