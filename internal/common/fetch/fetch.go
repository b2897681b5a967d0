// Package fetch defines the HTTP query-string contract shared between the
// fetch service (server side) and the reference test clients (client
// side), mirroring crates/common/src/fetch.rs.
package fetch

import "strconv"

// DefaultCount is used whenever the `count` query parameter is omitted.
const DefaultCount uint64 = 1

// HTTP GET paths served by the fetch service.
const (
	ProveBlockByNumberPath     = "/prove_block_by_number"
	ProveLatestBlockPath       = "/prove_latest_block"
	ReproduceBlockByNumberPath = "/reproduce_block_by_number"
)

// ProveBlockByNumberParams is the `prove_block_by_number` query contract:
// start_block_num=U64[&count=U64].
type ProveBlockByNumberParams struct {
	StartBlockNum uint64
	Count         *uint64
}

// ToQuery renders the params as URL query values, omitting Count when nil.
func (p ProveBlockByNumberParams) ToQuery() map[string]string {
	q := map[string]string{"start_block_num": formatUint(p.StartBlockNum)}
	if p.Count != nil {
		q["count"] = formatUint(*p.Count)
	}
	return q
}

// CountOrDefault returns the effective count, defaulting to DefaultCount.
func (p ProveBlockByNumberParams) CountOrDefault() uint64 {
	if p.Count == nil {
		return DefaultCount
	}
	return *p.Count
}

// ProveLatestBlockParams is the `prove_latest_block` query contract:
// [count=U64].
type ProveLatestBlockParams struct {
	Count *uint64
}

// ToQuery renders the params as URL query values, omitting Count when nil.
func (p ProveLatestBlockParams) ToQuery() map[string]string {
	q := map[string]string{}
	if p.Count != nil {
		q["count"] = formatUint(*p.Count)
	}
	return q
}

// CountOrDefault returns the effective count, defaulting to DefaultCount.
func (p ProveLatestBlockParams) CountOrDefault() uint64 {
	if p.Count == nil {
		return DefaultCount
	}
	return *p.Count
}

// ReproduceBlockByNumberParams is the `reproduce_block_by_number` query
// contract: start_block_num=U64[&count=U64].
type ReproduceBlockByNumberParams struct {
	StartBlockNum uint64
	Count         *uint64
}

// ToQuery renders the params as URL query values, omitting Count when nil.
func (p ReproduceBlockByNumberParams) ToQuery() map[string]string {
	q := map[string]string{"start_block_num": formatUint(p.StartBlockNum)}
	if p.Count != nil {
		q["count"] = formatUint(*p.Count)
	}
	return q
}

// CountOrDefault returns the effective count, defaulting to DefaultCount.
func (p ReproduceBlockByNumberParams) CountOrDefault() uint64 {
	if p.Count == nil {
		return DefaultCount
	}
	return *p.Count
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
