package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rental-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rental-inventory-api/internal/domain"
	"github.com/jhoicas/rental-inventory-api/internal/domain/entity"
	domaininv "github.com/jhoicas/rental-inventory-api/internal/domain/inventory"
)

func TestLedgerMove_InsuficienteNoEscribeLog(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 1)

	err := e.store.Run(e.ctx, func(repos inventory.Repos) error {
		return e.ledger.Move(e.ctx, repos, inventory.Move{
			ProductID: p, WarehouseID: wh, From: domaininv.Available, To: domaininv.Reserved, Quantity: 2, Action: entity.LogActionReserve,
		})
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	logs, err := e.store.Repos().Logs.ListAllByProduct(e.ctx, p)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.LogActionReceive, logs[0].Action)
}

func TestLedgerShip_RespetaTopeDeReserva(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 6)
	e.move(t, p, domaininv.Available, domaininv.Reserved, 3)

	err := e.store.Run(e.ctx, func(repos inventory.Repos) error {
		return e.ledger.Ship(e.ctx, repos, p, wh, "o1", 4, 1, entity.LogActionExport, "")
	})
	require.NoError(t, err)

	s, err := e.store.Repos().Stock.Get(e.ctx, p, wh)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Reserved)
	assert.Equal(t, 0, s.Available)
	assert.Equal(t, 4, s.OnRent)
}

func TestLedgerShip_InsuficienteInformaAmbosSaldos(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 2)
	e.move(t, p, domaininv.Available, domaininv.Reserved, 1)

	err := e.store.Run(e.ctx, func(repos inventory.Repos) error {
		return e.ledger.Ship(e.ctx, repos, p, wh, "o1", 3, 1, entity.LogActionExport, "")
	})
	var short *domain.InsufficientStockError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, 3, short.Requested)
	assert.Equal(t, 1, short.Reserved)
	assert.Equal(t, 1, short.Available)
}

func TestReservedFor_CuentaSoloGranelDelPedido(t *testing.T) {
	e := newEnv(t)
	p := e.product(t, 5)
	err := e.store.Run(e.ctx, func(repos inventory.Repos) error {
		base := inventory.Move{ProductID: p, WarehouseID: wh, OrderID: "o1", Quantity: 3, From: domaininv.Available, To: domaininv.Reserved, Action: entity.LogActionReserve}
		if err := e.ledger.Move(e.ctx, repos, base); err != nil {
			return err
		}
		rel := base
		rel.From, rel.To, rel.Quantity, rel.Action = domaininv.Reserved, domaininv.Available, 1, entity.LogActionRelease
		if err := e.ledger.Move(e.ctx, repos, rel); err != nil {
			return err
		}
		other := base
		other.OrderID, other.Quantity = "o2", 1
		return e.ledger.Move(e.ctx, repos, other)
	})
	require.NoError(t, err)

	err = e.store.Run(e.ctx, func(repos inventory.Repos) error {
		n, err := e.ledger.ReservedFor(e.ctx, repos, "o1", p)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		return nil
	})
	require.NoError(t, err)
}
