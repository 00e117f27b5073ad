package mock

import (
	"context"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"

	"github.com/vsl-labs/vsl-go/pkg/claims"
	"github.com/vsl-labs/vsl-go/pkg/cryptography"
)

// Service is an in-process stand-in for the remote settlement service,
// registered on a go-ethereum rpc.Server under the vsl namespace. It
// records every mutating request it accepts and can be primed with
// canned state and failures. Only behaviour observable from the client
// side is simulated; quorum accounting stays out of scope.
type Service struct {
	mu sync.Mutex

	Nonces    map[common.Address]uint64
	Balances  map[common.Address]string
	Settled   map[common.Hash]claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]
	BySender  map[common.Address][]claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]
	Submitted []cryptography.Signed[claims.SubmittedClaim]
	Settles   []cryptography.Signed[claims.SettleClaimMessage]
	Payments  []cryptography.Signed[claims.PayMessage]

	// CheckNonces enables remote-side nonce enforcement against Nonces.
	CheckNonces bool

	FailSubmit error
	FailSettle error
	FailPay    error

	submittedFeeds []submittedFeed
}

type submittedFeed struct {
	addr common.Address
	ch   chan claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]]
}

func NewService() *Service {
	return &Service{
		Nonces:   make(map[common.Address]uint64),
		Balances: make(map[common.Address]string),
		Settled:  make(map[common.Hash]claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]),
		BySender: make(map[common.Address][]claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]),
	}
}

// Serve registers svc under the vsl namespace and returns an in-process
// client connected to it.
func Serve(svc *Service) (*gethrpc.Server, *gethrpc.Client, error) {
	srv := gethrpc.NewServer()
	if err := srv.RegisterName("vsl", svc); err != nil {
		return nil, nil, errors.Wrap(err, "registering mock service")
	}

	return srv, gethrpc.DialInProc(srv), nil
}

func (s *Service) checkNonce(from common.Address, nonce uint64) error {
	if !s.CheckNonces {
		return nil
	}
	if want := s.Nonces[from]; nonce != want {
		return errors.Errorf("nonce too low: got %d, want %d", nonce, want)
	}
	s.Nonces[from]++
	return nil
}

func (s *Service) GetHealth() (string, error) {
	return "ok", nil
}

func (s *Service) GetAccountNonce(addr common.Address) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.Nonces[addr], nil
}

func (s *Service) GetBalance(addr common.Address) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.Balances[addr]
	if !ok {
		return "0x0", nil
	}

	return b, nil
}

func (s *Service) SubmitClaim(c cryptography.Signed[claims.SubmittedClaim]) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSubmit != nil {
		return "", s.FailSubmit
	}
	if !c.Verify() {
		return "", errors.New("invalid signature")
	}
	if int(c.Message.Quorum) > len(c.Message.To) {
		return "", errors.New("quorum larger than verifier set")
	}
	if err := s.checkNonce(c.Message.From, c.Message.Nonce); err != nil {
		return "", err
	}

	s.Submitted = append(s.Submitted, c)

	return c.Message.ClaimID().Hex(), nil
}

func (s *Service) SettleClaim(m cryptography.Signed[claims.SettleClaimMessage]) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailSettle != nil {
		return "", s.FailSettle
	}
	if !m.Verify() {
		return "", errors.New("invalid signature")
	}
	if err := s.checkNonce(m.Message.From, m.Message.Nonce); err != nil {
		return "", err
	}

	s.Settles = append(s.Settles, m)

	return m.Message.TargetClaimID.Hex(), nil
}

func (s *Service) Pay(p cryptography.Signed[claims.PayMessage]) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailPay != nil {
		return "", s.FailPay
	}
	if !p.Verify() {
		return "", errors.New("invalid signature")
	}
	if err := s.checkNonce(p.Message.From, p.Message.Nonce); err != nil {
		return "", err
	}

	s.Payments = append(s.Payments, p)

	id, err := p.Message.ClaimID()
	if err != nil {
		return "", err
	}

	return id.Hex(), nil
}

func (s *Service) CreateAsset(m cryptography.Signed[claims.CreateAssetMessage]) (claims.CreateAssetResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !m.Verify() {
		return claims.CreateAssetResult{}, errors.New("invalid signature")
	}
	if err := s.checkNonce(m.Message.AccountID, m.Message.Nonce); err != nil {
		return claims.CreateAssetResult{}, err
	}

	id, err := m.Message.ClaimID()
	if err != nil {
		return claims.CreateAssetResult{}, err
	}

	return claims.CreateAssetResult{
		AssetID: id.Hex(),
		ClaimID: id.Hex(),
	}, nil
}

func (s *Service) TransferAsset(m cryptography.Signed[claims.TransferAssetMessage]) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !m.Verify() {
		return "", errors.New("invalid signature")
	}
	if err := s.checkNonce(m.Message.From, m.Message.Nonce); err != nil {
		return "", err
	}

	id, err := m.Message.ClaimID()
	if err != nil {
		return "", err
	}

	return id.Hex(), nil
}

func (s *Service) SetAccountState(m cryptography.Signed[claims.SetStateMessage]) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !m.Verify() {
		return "", errors.New("invalid signature")
	}
	if err := s.checkNonce(m.Message.From, m.Message.Nonce); err != nil {
		return "", err
	}

	id, err := m.Message.ClaimID()
	if err != nil {
		return "", err
	}

	return id.Hex(), nil
}

func (s *Service) GetSettledClaimById(id common.Hash) (claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tsc, ok := s.Settled[id]
	if !ok {
		return tsc, errors.New("claim not found")
	}

	return tsc, nil
}

func (s *Service) ListSettledClaimsForSender(addr common.Address, since claims.Timestamp) ([]claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]{}
	for _, tsc := range s.BySender[addr] {
		if tsc.Timestamp.Cmp(since) >= 0 {
			out = append(out, tsc)
		}
	}

	return out, nil
}

// PaymentCount reports the payments recorded so far. Safe to call while
// the service is live.
func (s *Service) PaymentCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.Payments)
}

// AddSettled primes a settled claim, indexed by id and by the settling
// verifier, and pushes it to live subscribers.
func (s *Service) AddSettled(verifier common.Address, tsc claims.Timestamped[cryptography.Signed[claims.SettledVerifiedClaim]]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := claims.ParseHash("claim_id", tsc.ID)
	if err == nil {
		s.Settled[id] = tsc
	}
	s.BySender[verifier] = append(s.BySender[verifier], tsc)
}

// PushSubmitted delivers a submitted claim to subscribers watching its
// verifier addresses.
func (s *Service) PushSubmitted(tsc claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, feed := range s.submittedFeeds {
		for _, to := range tsc.Data.Message.To {
			if to == feed.addr {
				feed.ch <- tsc
				break
			}
		}
	}
}

func (s *Service) SubmittedClaimsForReceiver(ctx context.Context, addr common.Address) (*gethrpc.Subscription, error) {
	notifier, ok := gethrpc.NotifierFromContext(ctx)
	if !ok {
		return nil, gethrpc.ErrNotificationsUnsupported
	}

	sub := notifier.CreateSubscription()
	ch := make(chan claims.Timestamped[cryptography.Signed[claims.SubmittedClaim]], 16)

	s.mu.Lock()
	s.submittedFeeds = append(s.submittedFeeds, submittedFeed{addr: addr, ch: ch})
	s.mu.Unlock()

	go func() {
		for {
			select {
			case v := <-ch:
				if err := notifier.Notify(sub.ID, v); err != nil {
					return
				}
			case <-sub.Err():
				return
			case <-notifier.Closed():
				return
			}
		}
	}()

	return sub, nil
}
