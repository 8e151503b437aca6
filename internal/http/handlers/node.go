package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-lightning-hub/internal/errors"
)

type nodeInfoView struct {
	Pubkey        string `json:"identity_pubkey"`
	Alias         string `json:"alias"`
	BlockHeight   uint32 `json:"block_height"`
	NumPeers      int    `json:"num_peers"`
	SyncedToChain bool   `json:"synced_to_chain"`
	Version       string `json:"version"`
}

// NodeInfo — GET /getinfo: сводка о платёжной ноде.
func (h *Handlers) NodeInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.Service.NodeInfo(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, nodeInfoView{
		Pubkey:        info.Pubkey,
		Alias:         info.Alias,
		BlockHeight:   info.BlockHeight,
		NumPeers:      info.NumPeers,
		SyncedToChain: info.SyncedToChain,
		Version:       info.Version,
	})
}

type connectPeerRequest struct {
	URI string `json:"uri"`
}

type connectPeerResponse struct {
	Connected bool `json:"connected"`
}

// ConnectPeer — POST /node/connect: соединение ноды с пиром
// (uri в форме pubkey@host:port).
func (h *Handlers) ConnectPeer(w http.ResponseWriter, r *http.Request) {
	var in connectPeerRequest
	if err := decodeStrict(r, &in); err != nil {
		apierrors.WriteError(w, r, errValidation())
		return
	}

	if err := h.Service.ConnectPeer(r.Context(), in.URI); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, connectPeerResponse{Connected: true})
}
