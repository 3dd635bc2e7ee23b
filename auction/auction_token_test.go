// Copyright (c) 2025 The Slotio developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotio/slot-auction/auction"
	"github.com/slotio/slot-auction/builtin/token"
	"github.com/slotio/slot-auction/logdb"
	"github.com/slotio/slot-auction/slot"
)

func (h *harness) token() *token.Token {
	return h.engine.Token(h.st)
}

func (h *harness) mintAndApprove(addr slot.Address, balance, allowance int64) {
	h.token().Mint(addr, big.NewInt(balance))
	h.token().Approve(addr, slot.AuctionModuleAddr, big.NewInt(allowance))
}

func TestTokenBidUsesAuthorizedMinimum(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.launch()
	h.mintAndApprove(alice, 500, 120)
	roundID := h.round().ID

	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), roundID, "slot://a"))

	round := h.round()
	assert.Equal(t, big.NewInt(120), round.HighestBid)
	assert.Equal(t, alice, round.HighestBidder)
	assert.Equal(t, big.NewInt(380), h.token().BalanceOf(alice))
	assert.Equal(t, big.NewInt(120), h.token().BalanceOf(slot.AuctionModuleAddr))
	assert.Equal(t, 0, h.token().Allowance(alice, slot.AuctionModuleAddr).Sign())

	// balance caps the bid when it is below the allowance
	h.token().Mint(bob, big.NewInt(150))
	h.token().Approve(bob, slot.AuctionModuleAddr, big.NewInt(1000))
	require.NoError(t, h.engine.PlaceBid(h.env(bob, nil), roundID, "slot://b"))
	assert.Equal(t, big.NewInt(150), h.round().HighestBid)
	// alice got her tokens back
	assert.Equal(t, big.NewInt(500), h.token().BalanceOf(alice))
}

func TestTokenBidBelowMinimumRejected(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.launch()
	h.mintAndApprove(alice, 500, 100)
	h.mintAndApprove(bob, 500, 109)
	roundID := h.round().ID

	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), roundID, "slot://a"))
	err := h.engine.PlaceBid(h.env(bob, nil), roundID, "slot://b")
	assert.Equal(t, auction.ErrMinimumNotMet, err)
	assert.Equal(t, big.NewInt(500), h.token().BalanceOf(bob))
}

func TestTokenBidAcceptedAfterScheduledEnd(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.launch()
	h.mintAndApprove(alice, 500, 100)
	roundID := h.round().ID

	// the token era admits bids until settlement, even past the scheduled end
	h.now = testStart + testDuration + 100
	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), roundID, "slot://a"))
	assert.Equal(t, alice, h.round().HighestBidder)
	// the late bid lands inside the buffer, so the end moved with it
	assert.Equal(t, h.now+testTimeBuffer, h.round().EndTime)
}

func TestTokenBidToleratesFailedRefund(t *testing.T) {
	sink, err := logdb.NewMem()
	require.NoError(t, err)
	defer sink.Close()

	h := newHarness(t, slot.EraToken, func(o *auction.Options) {
		o.Sink = sink
	})
	h.launch()
	h.mintAndApprove(alice, 500, 100)
	h.mintAndApprove(bob, 500, 120)
	roundID := h.round().ID

	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), roundID, "slot://a"))

	// alice's account starts refusing transfers; her refund fails but the
	// new bid stands
	h.token().Freeze(alice)
	require.NoError(t, h.engine.PlaceBid(h.env(bob, nil), roundID, "slot://b"))

	assert.Equal(t, bob, h.round().HighestBidder)
	assert.Equal(t, big.NewInt(120), h.round().HighestBid)
	// her tokens stay in custody
	assert.Equal(t, big.NewInt(400), h.token().BalanceOf(alice))
	assert.Equal(t, big.NewInt(220), h.token().BalanceOf(slot.AuctionModuleAddr))

	failures, err := sink.FilterEvents(context.Background(), &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Topics: [5]*slot.Bytes32{&auction.RefundFailedTopic}}},
	})
	require.NoError(t, err)
	assert.Len(t, failures, 1)
}

func TestTokenSettleRequiresWhitelist(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.launch()
	h.mintAndApprove(alice, 500, 100)
	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), h.round().ID, "slot://a"))

	h.now = testStart + testDuration
	err := h.engine.SettleRound(h.env(bob, nil))
	assert.Equal(t, auction.ErrNotWhitelistedSettler, err)

	require.NoError(t, h.engine.SettleRound(h.env(admin, nil)))
	assert.Equal(t, big.NewInt(100), h.token().BalanceOf(treasury))
	assert.True(t, h.round().Settled)
}

func TestSettlerWhitelist(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.launch()
	assert.True(t, h.engine.IsSettler(h.st, admin), "deployer auto-authorized")

	err := h.engine.AddSettler(h.env(alice, nil), bob)
	assert.Equal(t, auction.ErrNotOwner, err)

	require.NoError(t, h.engine.AddSettler(h.env(admin, nil), bob))
	assert.True(t, h.engine.IsSettler(h.st, bob))

	require.NoError(t, h.engine.RemoveSettler(h.env(admin, nil), bob))
	assert.False(t, h.engine.IsSettler(h.st, bob))

	err = h.engine.AddSettler(h.env(admin, nil), slot.Address{})
	assert.Equal(t, auction.ErrInvalidParam, err)
}

func TestOverrideWinner(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.launch()
	h.mintAndApprove(alice, 500, 120)
	roundID := h.round().ID
	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), roundID, "slot://bad"))

	err := h.engine.OverrideWinner(h.env(bob, nil), carol, "slot://good", true)
	assert.Equal(t, auction.ErrNotWhitelistedSettler, err)

	require.NoError(t, h.engine.OverrideWinner(h.env(admin, nil), carol, "slot://good", true))

	round := h.round()
	assert.Equal(t, carol, round.HighestBidder)
	assert.Equal(t, "slot://good", round.URL)
	// the recorded amount survives the override
	assert.Equal(t, big.NewInt(120), round.HighestBid)
	// the displaced bidder was paid back
	assert.Equal(t, big.NewInt(500), h.token().BalanceOf(alice))
	assert.Equal(t, 0, h.token().BalanceOf(slot.AuctionModuleAddr).Sign())

	// custody is short of the recorded bid now, so settlement skips the
	// payout but still closes the round
	h.now = testStart + testDuration
	require.NoError(t, h.engine.SettleRound(h.env(admin, nil)))
	assert.True(t, h.round().Settled)
	assert.Equal(t, 0, h.token().BalanceOf(treasury).Sign())
	assert.Equal(t, "slot://good", h.settings().PendingURL)
}

func TestOverrideWinnerWithoutRefundKeepsCustody(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.launch()
	h.mintAndApprove(alice, 500, 120)
	roundID := h.round().ID
	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), roundID, "slot://bad"))

	require.NoError(t, h.engine.OverrideWinner(h.env(admin, nil), carol, "slot://good", false))
	assert.Equal(t, big.NewInt(380), h.token().BalanceOf(alice))
	assert.Equal(t, big.NewInt(120), h.token().BalanceOf(slot.AuctionModuleAddr))

	h.now = testStart + testDuration
	require.NoError(t, h.engine.SettleRound(h.env(admin, nil)))
	assert.Equal(t, big.NewInt(120), h.token().BalanceOf(treasury))
}

func TestOverrideWinnerChecks(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.launch()
	h.mintAndApprove(alice, 500, 100)
	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), h.round().ID, "slot://a"))

	h.now = testStart + testDuration
	require.NoError(t, h.engine.SettleRound(h.env(admin, nil)))

	err := h.engine.OverrideWinner(h.env(admin, nil), carol, "slot://x", false)
	assert.Equal(t, auction.ErrAlreadySettled, err)

	require.NoError(t, h.engine.Pause(h.env(admin, nil)))
	err = h.engine.OverrideWinner(h.env(admin, nil), carol, "slot://x", false)
	assert.Equal(t, auction.ErrPaused, err)
}

func TestSettlementCustodyFollowsTransferor(t *testing.T) {
	payoutAddr := slot.BytesToAddress([]byte("payout-token"))
	h := newHarness(t, slot.EraToken, func(o *auction.Options) {
		o.Transferor = auction.NewTokenTransferor(payoutAddr)
	})
	h.launch()
	h.mintAndApprove(alice, 500, 100)
	roundID := h.round().ID
	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), roundID, "slot://a"))

	// the payout asset is whatever token the transferor was built on; the
	// module holds none of it, so settlement skips the payout instead of
	// failing on the transfer
	payout := token.New(payoutAddr, h.st)
	h.now = testStart + testDuration
	require.NoError(t, h.engine.SettleRound(h.env(admin, nil)))
	assert.True(t, h.round().Settled)
	assert.Equal(t, 0, payout.BalanceOf(treasury).Sign())
	assert.Equal(t, "slot://a", h.settings().PendingURL)

	// once the module holds the payout token, the next settlement pays out
	payout.Mint(slot.AuctionModuleAddr, big.NewInt(1000))
	require.NoError(t, h.engine.Pause(h.env(admin, nil)))
	require.NoError(t, h.engine.Unpause(h.env(admin, nil)))
	h.mintAndApprove(bob, 500, 110)
	require.NoError(t, h.engine.PlaceBid(h.env(bob, nil), h.round().ID, "slot://b"))
	h.now = testStart + 2*testDuration
	require.NoError(t, h.engine.SettleRound(h.env(admin, nil)))
	assert.Equal(t, big.NewInt(110), payout.BalanceOf(treasury))
}

func TestTokenAdvanceRound(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.launch()
	h.mintAndApprove(alice, 500, 100)
	require.NoError(t, h.engine.PlaceBid(h.env(alice, nil), h.round().ID, "slot://a"))

	h.now = testStart + testDuration
	err := h.engine.AdvanceRound(h.env(bob, nil))
	assert.Equal(t, auction.ErrNotWhitelistedSettler, err)

	require.NoError(t, h.engine.AdvanceRound(h.env(admin, nil)))
	assert.Equal(t, big.NewInt(2), h.round().ID)
	assert.Equal(t, big.NewInt(100), h.token().BalanceOf(treasury))
}

func TestTokenSettlementRecordedInSettings(t *testing.T) {
	h := newHarness(t, slot.EraToken)
	h.initialize()
	assert.Equal(t, slot.SettlementTokenAddr, h.settings().SettlementToken)
}
