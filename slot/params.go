// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package slot

// Eras of the auction house. EraNative sells the slot for native value with a
// wrapped-token fallback on payout; EraToken sells it for the configured
// settlement token and adds the settler whitelist and override path.
const (
	EraNative = uint32(1)
	EraToken  = uint32(2)
)

// IsTokenEra reports whether the given era runs token-denominated rounds.
func IsTokenEra(era uint32) bool {
	return era >= EraToken
}

// GetEraName returns a printable name for an era.
func GetEraName(era uint32) string {
	switch era {
	case EraNative:
		return "Native"
	case EraToken:
		return "Token"
	default:
		return "Unknown"
	}
}

// Module accounts. Funds custodied by the engine accumulate on
// AuctionModuleAddr; the wrapped token and settlement token contracts get
// their own accounts.
var (
	AuctionModuleAddr   = BytesToAddress([]byte("auction-module-address"))
	WrappedTokenAddr    = BytesToAddress([]byte("wrapped-token-address"))
	SettlementTokenAddr = BytesToAddress([]byte("settlement-token-address"))
)

// Storage keys of the engine's singleton records.
var (
	AuctionSettingsKey = Blake2b([]byte("auction-settings-key"))
	AuctionRoundKey    = Blake2b([]byte("auction-round-key"))
	SettlerListKey     = Blake2b([]byte("auction-settler-list-key"))
)

const (
	// RefundGasStipend bounds the computation a native payout recipient may
	// perform. The default native send hook performs a plain balance move and
	// cannot run recipient code; custom hooks must honor this budget.
	RefundGasStipend uint64 = 50_000

	// SentinelURL is the metadata url of a round with no leading bid yet.
	SentinelURL = ""
)
