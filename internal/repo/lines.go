package repo

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/toomajBandad/MoonShop-Backend/internal/lineitem"
)

// lineTable names a child table holding (container, product, quantity) rows
// with a unique index on (fk, product_id).
type lineTable struct {
	table string
	fk    string
}

var (
	cartLines  = lineTable{table: "cart_items", fk: "cart_id"}
	orderLines = lineTable{table: "order_items", fk: "order_id"}
)

// upsert inserts row or, when the product already has a line, adds the new
// quantity to it in the same statement. The update only applies while the sum
// stays within lineitem.MaxQuantity; a skipped update affects no rows.
func (t lineTable) upsert(tx *gorm.DB, row any, qty int) error {
	if qty <= 0 || qty > lineitem.MaxQuantity {
		return fmt.Errorf("%w: quantity %d outside 1..%d", lineitem.ErrInvalidQuantity, qty, lineitem.MaxQuantity)
	}
	res := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: t.fk}, {Name: "product_id"}},
		DoUpdates: clause.Set{{
			Column: clause.Column{Name: "quantity"},
			Value:  gorm.Expr(t.table + ".quantity + excluded.quantity"),
		}},
		Where: clause.Where{Exprs: []clause.Expression{
			gorm.Expr(t.table+".quantity <= ? - excluded.quantity", lineitem.MaxQuantity),
		}},
	}).Create(row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: line would exceed %d", lineitem.ErrInvalidQuantity, lineitem.MaxQuantity)
	}
	return nil
}

func (t lineTable) set(tx *gorm.DB, containerID, productID uuid.UUID, qty int) error {
	if qty <= 0 || qty > lineitem.MaxQuantity {
		return fmt.Errorf("%w: quantity %d outside 1..%d", lineitem.ErrInvalidQuantity, qty, lineitem.MaxQuantity)
	}
	res := tx.Table(t.table).
		Where(t.fk+" = ? AND product_id = ?", containerID, productID).
		Updates(map[string]any{"quantity": qty, "updated_at": tx.NowFunc()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lineitem.ErrItemNotFound
	}
	return nil
}

func (t lineTable) remove(tx *gorm.DB, containerID, productID uuid.UUID) error {
	return tx.Exec("DELETE FROM "+t.table+" WHERE "+t.fk+" = ? AND product_id = ?", containerID, productID).Error
}

func (t lineTable) clear(tx *gorm.DB, containerID uuid.UUID) error {
	return tx.Exec("DELETE FROM "+t.table+" WHERE "+t.fk+" = ?", containerID).Error
}
