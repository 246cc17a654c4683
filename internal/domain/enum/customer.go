package enum

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

func (g Gender) IsValid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, Gender.IsValid, "gender")
	if err != nil {
		return err
	}
	*g = v
	return nil
}

// CreditStatus is the store's decision on selling to a customer on credit.
type CreditStatus string

const (
	CreditStatusPending  CreditStatus = "pending"
	CreditStatusApproved CreditStatus = "approved"
	CreditStatusDenied   CreditStatus = "denied"
)

func (s CreditStatus) IsValid() bool {
	return s == CreditStatusPending || s == CreditStatusApproved || s == CreditStatusDenied
}

func (s *CreditStatus) UnmarshalJSON(data []byte) error {
	v, err := decodeCode(data, CreditStatus.IsValid, "credit status")
	if err != nil {
		return err
	}
	*s = v
	return nil
}
