// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package positions

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/staking"
)

// Position is a stored user position. The record does not name its pool, so
// pending rewards are only served by the pool scoped route.
type Position struct {
	Address            ident.Address `json:"address"`
	Balance            uint64        `json:"balance"`
	RewardPerTokenPaid uint64        `json:"rewardPerTokenPaid"`
	Rewards            uint64        `json:"rewards"`
}

type Positions struct {
	ledger  *host.Ledger
	staking *staking.Processor
}

func New(ledger *host.Ledger, processor *staking.Processor) *Positions {
	return &Positions{ledger, processor}
}

func (p *Positions) handleGetPosition(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.PathAddress(req, "address")
	if err != nil {
		return err
	}
	pos, ok, err := p.staking.Position(p.ledger, addr)
	if err != nil {
		if errors.Is(err, staking.ErrDecodeFailure) {
			return utils.BadRequest(err)
		}
		return err
	}
	if !ok {
		return utils.NotFound(errors.Errorf("position %v", addr))
	}
	return utils.WriteJSON(w, &Position{
		Address:            addr,
		Balance:            pos.Balance,
		RewardPerTokenPaid: pos.RewardPerTokenPaid,
		Rewards:            pos.Rewards,
	})
}

func (p *Positions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /positions/{address}").
		HandlerFunc(utils.WrapHandlerFunc(p.handleGetPosition))
}
