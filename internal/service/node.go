package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pribylovaa/go-lightning-hub/internal/lightning"
)

// NodeInfo возвращает сводку о состоянии платёжной ноды.
func (s *Service) NodeInfo(ctx context.Context) (*lightning.NodeInfo, error) {
	const op = "service.node.NodeInfo"

	info, err := s.ln.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNodeFailure)
	}

	return info, nil
}

// ConnectPeer устанавливает соединение ноды с пиром.
// Адрес ожидается в форме pubkey@host:port.
func (s *Service) ConnectPeer(ctx context.Context, peer string) error {
	const op = "service.node.ConnectPeer"

	if !strings.Contains(peer, "@") {
		return fmt.Errorf("%s: %w", op, ErrValidation)
	}

	if err := s.ln.Connect(ctx, peer); err != nil {
		return fmt.Errorf("%s: %w", op, ErrNodeFailure)
	}

	return nil
}
