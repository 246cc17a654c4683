package enum

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeIn  TransactionType = "in"
	TransactionTypeOut TransactionType = "out"
)

func (t TransactionType) IsValid() bool {
	return t == TransactionTypeIn || t == TransactionTypeOut
}

func (t *TransactionType) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, TransactionType.IsValid, "transaction type")
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// TransactionCategory groups ledger entries for reporting.
type TransactionCategory string

const (
	TransactionCategorySales     TransactionCategory = "sales"
	TransactionCategorySupplier  TransactionCategory = "supplier"
	TransactionCategoryRent      TransactionCategory = "rent"
	TransactionCategoryUtilities TransactionCategory = "utilities"
	TransactionCategorySalary    TransactionCategory = "salary"
	TransactionCategoryOther     TransactionCategory = "other"
)

func (c TransactionCategory) IsValid() bool {
	switch c {
	case TransactionCategorySales, TransactionCategorySupplier, TransactionCategoryRent,
		TransactionCategoryUtilities, TransactionCategorySalary, TransactionCategoryOther:
		return true
	}
	return false
}

func (c *TransactionCategory) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, TransactionCategory.IsValid, "transaction category")
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// TransactionStatus tells whether money actually moved.
type TransactionStatus string

const (
	TransactionStatusPaid    TransactionStatus = "paid"
	TransactionStatusPending TransactionStatus = "pending"
)

func (s TransactionStatus) IsValid() bool {
	return s == TransactionStatusPaid || s == TransactionStatusPending
}

func (s *TransactionStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, TransactionStatus.IsValid, "transaction status")
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// PaymentMethod is a label only; no gateway is involved.
type PaymentMethod string

const (
	PaymentMethodCredit PaymentMethod = "credit"
	PaymentMethodDebit  PaymentMethod = "debit"
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodPix    PaymentMethod = "pix"
	PaymentMethodBoleto PaymentMethod = "boleto"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCredit, PaymentMethodDebit, PaymentMethodCash, PaymentMethodPix, PaymentMethodBoleto:
		return true
	}
	return false
}

func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCredit:
		return "Cartão de Crédito"
	case PaymentMethodDebit:
		return "Cartão de Débito"
	case PaymentMethodCash:
		return "Dinheiro"
	case PaymentMethodPix:
		return "PIX"
	case PaymentMethodBoleto:
		return "Boleto"
	}
	return string(m)
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, PaymentMethod.IsValid, "payment method")
	if err != nil {
		return err
	}
	*m = v
	return nil
}
