// Package economy provides the two collaborators the work-shift pipeline
// needs: a copper funds ledger and an item inventory, both rows in the store.
package economy

import (
	"log"

	"wyrnlands.game/internal/persistence/gamedb"
)

// Ledger moves copper between owners. A transfer either fully debits and
// credits, or leaves both balances untouched.
type Ledger struct {
	db     *gamedb.Store
	logger *log.Logger
}

func NewLedger(db *gamedb.Store, logger *log.Logger) *Ledger {
	return &Ledger{db: db, logger: logger}
}

func (l *Ledger) Balance(ownerType, ownerID string) int64 {
	row, err := l.db.Get(
		`SELECT copper FROM funds WHERE owner_type=? AND owner_id=?`, ownerType, ownerID,
	)
	if err != nil || row == nil {
		return 0
	}
	return gamedb.AsInt64(row["copper"])
}

// Deposit credits copper, creating the funds row on first use.
func (l *Ledger) Deposit(ownerType, ownerID string, amount int64) bool {
	if amount <= 0 {
		return false
	}
	_, err := l.db.Run(
		`INSERT INTO funds (owner_type, owner_id, copper) VALUES (?, ?, ?)
		 ON CONFLICT(owner_type, owner_id) DO UPDATE SET copper = copper + excluded.copper`,
		ownerType, ownerID, amount,
	)
	if err != nil {
		if l.logger != nil {
			l.logger.Printf("economy: deposit %s/%s: %v", ownerType, ownerID, err)
		}
		return false
	}
	return true
}

// ProcessTransaction moves amount copper from payer to payee. Fails (false)
// when the payer has insufficient funds. The guarded debit relies on the
// store's per-statement atomicity.
func (l *Ledger) ProcessTransaction(payerType, payerID, payeeType, payeeID string, amount int64, reason string) bool {
	if amount <= 0 {
		return false
	}
	res, err := l.db.Run(
		`UPDATE funds SET copper = copper - ? WHERE owner_type=? AND owner_id=? AND copper >= ?`,
		amount, payerType, payerID, amount,
	)
	if err != nil || res.Changes == 0 {
		if l.logger != nil {
			l.logger.Printf("economy: transfer %d from %s/%s failed (%s)", amount, payerType, payerID, reason)
		}
		return false
	}
	if !l.Deposit(payeeType, payeeID, amount) {
		// Credit failed after the debit went through; put the copper back.
		_, _ = l.db.Run(
			`UPDATE funds SET copper = copper + ? WHERE owner_type=? AND owner_id=?`,
			amount, payerType, payerID,
		)
		return false
	}
	return true
}

// Inventory is the item store for households, businesses and entities.
type Inventory struct {
	db     *gamedb.Store
	logger *log.Logger
}

func NewInventory(db *gamedb.Store, logger *log.Logger) *Inventory {
	return &Inventory{db: db, logger: logger}
}

// AddItem deposits quantity of an item. Quantities at or below zero are
// rejected.
func (i *Inventory) AddItem(ownerType, ownerID, itemName string, quantity int) bool {
	if quantity <= 0 || itemName == "" {
		return false
	}
	_, err := i.db.Run(
		`INSERT INTO inventories (owner_type, owner_id, item_name, quantity) VALUES (?, ?, ?, ?)
		 ON CONFLICT(owner_type, owner_id, item_name) DO UPDATE SET quantity = quantity + excluded.quantity`,
		ownerType, ownerID, itemName, quantity,
	)
	if err != nil {
		if i.logger != nil {
			i.logger.Printf("economy: add item %s x%d to %s/%s: %v", itemName, quantity, ownerType, ownerID, err)
		}
		return false
	}
	return true
}

func (i *Inventory) Count(ownerType, ownerID, itemName string) int {
	row, err := i.db.Get(
		`SELECT quantity FROM inventories WHERE owner_type=? AND owner_id=? AND item_name=?`,
		ownerType, ownerID, itemName,
	)
	if err != nil || row == nil {
		return 0
	}
	return gamedb.AsInt(row["quantity"])
}
