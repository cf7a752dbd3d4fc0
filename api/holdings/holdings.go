// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package holdings

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/host"
	"github.com/vechain/stakepool/ident"
	"github.com/vechain/stakepool/token"
)

type Holding struct {
	Address ident.Address `json:"address"`
	Mint    ident.Address `json:"mint"`
	Owner   ident.Address `json:"owner"`
	Amount  uint64        `json:"amount"`
}

type Holdings struct {
	ledger *host.Ledger
	tokens *token.Service
}

func New(ledger *host.Ledger, tokens *token.Service) *Holdings {
	return &Holdings{ledger, tokens}
}

func (h *Holdings) handleGetHolding(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.PathAddress(req, "address")
	if err != nil {
		return err
	}
	holding, err := h.tokens.HoldingAt(h.ledger, addr)
	if err != nil {
		if errors.Is(err, token.ErrInvalidHolding) {
			return utils.NotFound(err)
		}
		return err
	}
	return utils.WriteJSON(w, &Holding{
		Address: addr,
		Mint:    holding.Mint,
		Owner:   holding.Owner,
		Amount:  holding.Amount,
	})
}

func (h *Holdings) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}").
		Methods(http.MethodGet).
		Name("GET /holdings/{address}").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHolding))
}
