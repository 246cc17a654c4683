package enum

// MovementKind is the reason a product's stock level changed.
type MovementKind string

const (
	MovementKindSale       MovementKind = "sale"
	MovementKindRestock    MovementKind = "restock"
	MovementKindAdjustment MovementKind = "adjustment"
)

func (k MovementKind) IsValid() bool {
	return k == MovementKindSale || k == MovementKindRestock || k == MovementKindAdjustment
}

func (k *MovementKind) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, MovementKind.IsValid, "movement kind")
	if err != nil {
		return err
	}
	*k = v
	return nil
}
