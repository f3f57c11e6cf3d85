package token

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"tradefeed/internal/model"
)

// Registry is an immutable lookup of known tokens and pools. It is built once
// at startup and shared without synchronization; there is no eviction and no
// runtime mutation.
type Registry struct {
	tokens map[string]model.TokenInfo
	pools  map[string]model.PoolPair
}

// NewRegistry builds a registry from token and pool tables. Keys are matched
// case-insensitively.
func NewRegistry(tokens map[string]model.TokenInfo, pools map[string]model.PoolPair) *Registry {
	r := &Registry{
		tokens: make(map[string]model.TokenInfo, len(tokens)),
		pools:  make(map[string]model.PoolPair, len(pools)),
	}
	for addr, info := range tokens {
		r.tokens[strings.ToLower(addr)] = info
	}
	for id, pair := range pools {
		r.pools[strings.ToLower(id)] = pair
	}
	return r
}

// DefaultRegistry returns the compiled-in Sepolia token and pool tables.
func DefaultRegistry() *Registry {
	return NewRegistry(defaultTokens, defaultPools)
}

// LoadRegistry reads a YAML registry file and merges it over the defaults.
// Entries in the file win on key collision.
func LoadRegistry(path string) (*Registry, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}

	tokens := make(map[string]model.TokenInfo, len(defaultTokens))
	for addr, info := range defaultTokens {
		tokens[addr] = info
	}
	pools := make(map[string]model.PoolPair, len(defaultPools))
	for id, pair := range defaultPools {
		pools[id] = pair
	}

	var fileTokens map[string]model.TokenInfo
	if err := v.UnmarshalKey("tokens", &fileTokens); err != nil {
		return nil, fmt.Errorf("parse tokens: %w", err)
	}
	for addr, info := range fileTokens {
		tokens[addr] = info
	}

	var filePools map[string]model.PoolPair
	if err := v.UnmarshalKey("pools", &filePools); err != nil {
		return nil, fmt.Errorf("parse pools: %w", err)
	}
	for id, pair := range filePools {
		pools[id] = pair
	}

	return NewRegistry(tokens, pools), nil
}

// ResolvePool maps a pool identifier to its token pair. Unknown pools return
// false and the caller skips the record; the registry never guesses.
func (r *Registry) ResolvePool(poolID string) (model.PoolPair, bool) {
	pair, ok := r.pools[strings.ToLower(poolID)]
	return pair, ok
}

// TokenFor looks up a known token by address.
func (r *Registry) TokenFor(address string) (model.TokenInfo, bool) {
	info, ok := r.tokens[strings.ToLower(address)]
	return info, ok
}

// SymbolFor returns the display symbol for an address, falling back to a
// shortened form of the address itself. It always returns something
// renderable.
func (r *Registry) SymbolFor(address string) string {
	if info, ok := r.tokens[strings.ToLower(address)]; ok {
		return info.Symbol
	}
	return ShortAddress(address)
}

// DecimalsFor returns the decimals for an address, defaulting to 18 for
// unknown tokens.
func (r *Registry) DecimalsFor(address string) uint8 {
	if info, ok := r.tokens[strings.ToLower(address)]; ok {
		return info.Decimals
	}
	return 18
}

// ShortAddress renders the first 6 and last 4 characters of an address joined
// by an ellipsis. Short inputs are returned unchanged.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

var defaultTokens = map[string]model.TokenInfo{
	"0x1c7d4b196cb0c7b01d743fbc6116a902379c7238": {Symbol: "USDC", Decimals: 6},
	"0xfff9976782d46cc05630d1f6ebab18b2324d6b14": {Symbol: "WETH", Decimals: 18},
	"0x7b79995e5f793a07bc00c21412e50ecae098e7f9": {Symbol: "WETH9", Decimals: 18},
	"0x779877a7b0d9e8603169ddbd7836e478b4624789": {Symbol: "LINK", Decimals: 18},
}

var defaultPools = map[string]model.PoolPair{
	"0x90d1163b1da1f5e5c1e285dbd9d28bf5d4e4e9915c06baca1b0d2fcea922a4b9": {
		Currency0: "0x1c7d4b196cb0c7b01d743fbc6116a902379c7238",
		Currency1: "0xfff9976782d46cc05630d1f6ebab18b2324d6b14",
	},
	"0x2f1e9d1c7a9f2c1f3b2a44b6f07d8dcf0d1a5e9f6b3c8d7e4a5b6c7d8e9f0a1b": {
		Currency0: "0x779877a7b0d9e8603169ddbd7836e478b4624789",
		Currency1: "0xfff9976782d46cc05630d1f6ebab18b2324d6b14",
	},
}
