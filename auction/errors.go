// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import "errors"

// Admission errors abort the triggering call with no state change; the caller
// may retry with a valid bid.
var (
	ErrWrongRound       = errors.New("bid for wrong round")
	ErrRoundOver        = errors.New("round already over")
	ErrReserveNotMet    = errors.New("bid below reserve price")
	ErrMinimumNotMet    = errors.New("bid below minimum increment")
	ErrNotEnoughBalance = errors.New("not enough balance for bid")
)

// Lifecycle errors indicate an operation invoked out of sequence.
var (
	ErrAlreadySettled = errors.New("round already settled")
	ErrNotStarted     = errors.New("round not started")
	ErrStillActive    = errors.New("round still active")
	ErrCreateFailed   = errors.New("round creation refused")
	ErrLaunchFailed   = errors.New("launch failed")
)

// Custody errors are the only errors that can leave a round stuck until the
// custody problem is fixed externally.
var (
	ErrInsolvent               = errors.New("insufficient custody for payout")
	ErrFailingFallbackTransfer = errors.New("wrapped fallback transfer failed")
	ErrTokenTransferFailed     = errors.New("token transfer failed")
)

// Authorization errors.
var (
	ErrNotOwner              = errors.New("caller is not the owner")
	ErrNotWhitelistedSettler = errors.New("caller is not a whitelisted settler")
)

var (
	ErrPaused             = errors.New("auction is paused")
	ErrNotPaused          = errors.New("auction is not paused")
	ErrReentrantCall      = errors.New("reentrant call")
	ErrUnsupportedEra     = errors.New("operation not supported in this era")
	ErrInvalidParam       = errors.New("invalid parameter")
	ErrAlreadyInitialized = errors.New("already initialized")
)
