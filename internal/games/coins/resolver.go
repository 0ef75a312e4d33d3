package coins

import "errors"

// ResolverState is the resolver's state machine position.
type ResolverState int

const (
	StateIdle ResolverState = iota
	StateResolvingContact
)

// Outcome is the result of resolving one contact.
type Outcome int

const (
	OutcomeIgnored   Outcome = iota // Not a live coin
	OutcomeCollected                // Steps spent, coin destroyed
	OutcomeRejected                 // Balance too low, coin left alive
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCollected:
		return "collected"
	case OutcomeRejected:
		return "rejected"
	default:
		return "ignored"
	}
}

// Resolver applies the purchase rule to bag/coin contacts.
type Resolver struct {
	ledger *Ledger
	cost   int
	state  ResolverState

	// OnCollect runs after a successful spend with the coin body.
	OnCollect func(coin *Body)
	// OnReject runs when the balance cannot cover the coin.
	OnReject func(coin *Body)
}

// NewResolver creates a resolver charging cost steps per coin.
func NewResolver(ledger *Ledger, cost int) *Resolver {
	return &Resolver{ledger: ledger, cost: cost}
}

// State returns the current state. Outside Resolve it is always StateIdle.
func (r *Resolver) State() ResolverState {
	return r.state
}

// CoinSide picks the coin out of a contact pair by category: body A if it
// is tagged Coin, otherwise body B. When both are coins, A wins.
func CoinSide(a, b *Body) *Body {
	if a.Category == CategoryCoin {
		return a
	}
	return b
}

// Resolve handles one contact synchronously and returns to Idle. Only a
// bag/coin pair is a purchase; any other pair is ignored.
func (r *Resolver) Resolve(a, b *Body) Outcome {
	if a.Category|b.Category != CategoryBag|CategoryCoin {
		return OutcomeIgnored
	}
	coin := CoinSide(a, b)
	if coin.Category != CategoryCoin || !coin.InWorld() {
		return OutcomeIgnored
	}

	r.state = StateResolvingContact
	defer func() { r.state = StateIdle }()

	err := r.ledger.Spend(r.cost)
	switch {
	case err == nil:
		if r.OnCollect != nil {
			r.OnCollect(coin)
		}
		return OutcomeCollected
	case errors.Is(err, ErrNotEnoughSteps):
		if r.OnReject != nil {
			r.OnReject(coin)
		}
		return OutcomeRejected
	default:
		return OutcomeIgnored
	}
}
