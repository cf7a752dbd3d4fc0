// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pools

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/staking"
)

type Pools struct {
	ledger  *host.Ledger
	staking *staking.Processor
	clock   host.Clock
}

func New(ledger *host.Ledger, processor *staking.Processor, clock host.Clock) *Pools {
	if clock == nil {
		clock = host.SystemClock
	}
	return &Pools{
		ledger,
		processor,
		clock,
	}
}

func (p *Pools) pool(addr ident.Address) (*staking.PoolLedger, error) {
	pool, ok, err := p.staking.Pool(p.ledger, addr)
	if err != nil {
		if errors.Is(err, staking.ErrDecodeFailure) {
			return nil, utils.BadRequest(err)
		}
		return nil, err
	}
	if !ok {
		return nil, utils.NotFound(errors.Errorf("pool %v", addr))
	}
	return pool, nil
}

func (p *Pools) writePool(w http.ResponseWriter, addr ident.Address) error {
	pool, err := p.pool(addr)
	if err != nil {
		return err
	}
	addrs := p.staking.Addresses()
	stakingAuth, err := addrs.StakingCustody(pool.StakingAsset)
	if err != nil {
		return err
	}
	rewardAuth, err := addrs.RewardCustody(pool.RewardAsset)
	if err != nil {
		return err
	}
	rpt, err := p.staking.Engine().RewardPerToken(pool, p.clock())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertPool(addr, pool, stakingAuth.Address, rewardAuth.Address, rpt))
}

func (p *Pools) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.PathAddress(req, "address")
	if err != nil {
		return err
	}
	return p.writePool(w, addr)
}

func (p *Pools) handleFindPool(w http.ResponseWriter, req *http.Request) error {
	stakingAsset, err := utils.QueryAddress(req, "staking")
	if err != nil {
		return err
	}
	rewardAsset, err := utils.QueryAddress(req, "reward")
	if err != nil {
		return err
	}
	auth, err := p.staking.Addresses().Pool(stakingAsset, rewardAsset)
	if err != nil {
		return err
	}
	return p.writePool(w, auth.Address)
}

func (p *Pools) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	poolAddr, err := utils.PathAddress(req, "address")
	if err != nil {
		return err
	}
	depositor, err := utils.PathAddress(req, "depositor")
	if err != nil {
		return err
	}
	pool, err := p.pool(poolAddr)
	if err != nil {
		return err
	}
	auth, err := p.staking.Addresses().Position(poolAddr, depositor)
	if err != nil {
		return err
	}
	pos, ok, err := p.staking.Position(p.ledger, auth.Address)
	if err != nil {
		return err
	}
	if !ok {
		return utils.NotFound(errors.Errorf("position of %v in %v", depositor, poolAddr))
	}
	pending, err := p.staking.Engine().Pending(*pool, *pos, p.clock())
	if err != nil {
		// a ledger left inconsistent by re-initialization cannot settle
		return utils.Conflict(err)
	}
	return utils.WriteJSON(w, &Position{
		Address:            auth.Address,
		Pool:               poolAddr,
		Depositor:          depositor,
		Balance:            pos.Balance,
		RewardPerTokenPaid: pos.RewardPerTokenPaid,
		Rewards:            pos.Rewards,
		PendingRewards:     pending,
	})
}

func (p *Pools) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("GET /pools").
		HandlerFunc(utils.WrapHandlerFunc(p.handleFindPool))
	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /pools/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPool))
	sub.Path("/{address}/positions/{depositor}").
		Methods(http.MethodGet).
		Name("GET /pools/{address}/positions/{depositor}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPosition))
}
