package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/optica-api/internal/domain/entity"
	"github.com/sangkips/optica-api/pkg/llm"
)

// Recommendation is the structured lens advice returned by the generator.
type Recommendation struct {
	Summary    string   `json:"summary" jsonschema:"description=Short advice for the customer in Brazilian Portuguese"`
	LensTypes  []string `json:"lens_types" jsonschema:"description=Suggested lens designs"`
	Treatments []string `json:"treatments" jsonschema:"description=Suggested coatings and filters"`
	FrameTips  []string `json:"frame_tips" jsonschema:"description=Frame constraints for the suggested lenses"`
	Warnings   []string `json:"warnings" jsonschema:"description=Things the optician should double check"`
}

// Advice wraps a recommendation. When the generator is unavailable Degraded
// is set and Message explains it; the request itself never fails.
type Advice struct {
	PrescriptionID uuid.UUID       `json:"prescription_id"`
	Model          string          `json:"model"`
	Degraded       bool            `json:"degraded"`
	Message        string          `json:"message,omitempty"`
	Recommendation *Recommendation `json:"recommendation,omitempty"`
}

const degradedMessage = "Sugestão automática indisponível no momento. Consulte a tabela de lentes da loja."

// AdvisorService suggests lenses for a prescription and the customer's routine.
type AdvisorService struct {
	generator llm.Generator
	customers *CustomerService
}

// NewAdvisorService creates a new advisor service
func NewAdvisorService(generator llm.Generator, customers *CustomerService) *AdvisorService {
	return &AdvisorService{generator: generator, customers: customers}
}

// Recommend asks the generator for lens advice. Only a missing customer or
// prescription is an error; generator failures produce degraded advice.
func (s *AdvisorService) Recommend(ctx context.Context, customerID, prescriptionID uuid.UUID, lifestyle string) (*Advice, error) {
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	prescription, err := s.customers.GetPrescription(ctx, customerID, prescriptionID)
	if err != nil {
		return nil, err
	}

	advice := &Advice{PrescriptionID: prescriptionID}
	if s.generator == nil {
		advice.Degraded = true
		advice.Message = degradedMessage
		return advice, nil
	}
	advice.Model = s.generator.Model()

	rec, err := s.ask(ctx, customer, prescription, lifestyle)
	if err != nil {
		log.Printf("Warning: lens advisor failed for prescription %s: %v", prescriptionID, err)
		advice.Degraded = true
		advice.Message = degradedMessage
		return advice, nil
	}
	advice.Recommendation = rec
	return advice, nil
}

func (s *AdvisorService) ask(ctx context.Context, customer *entity.Customer, p *PrescriptionView, lifestyle string) (*Recommendation, error) {
	schema, err := llm.SchemaFor(&Recommendation{})
	if err != nil {
		return nil, err
	}
	raw, err := s.generator.Complete(ctx, advisorPrompt(customer, p, lifestyle), map[string]any{
		llm.OptSchema:      schema,
		llm.OptSchemaName:  "lens_recommendation",
		llm.OptMaxTokens:   800,
		llm.OptTemperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	var rec Recommendation
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &rec); err != nil {
		return nil, fmt.Errorf("decode recommendation: %w", err)
	}
	if rec.Summary == "" {
		return nil, fmt.Errorf("empty recommendation")
	}
	return &rec, nil
}

func advisorPrompt(customer *entity.Customer, p *PrescriptionView, lifestyle string) string {
	var b strings.Builder
	b.WriteString("Você é um óptico experiente. Sugira lentes e tratamentos para a receita abaixo.\n")
	b.WriteString("Responda apenas com o JSON pedido, em português do Brasil.\n\n")
	if customer.Profession != "" {
		fmt.Fprintf(&b, "Profissão: %s\n", customer.Profession)
	}
	if customer.BirthDate != nil {
		fmt.Fprintf(&b, "Nascimento: %s\n", customer.BirthDate.BR())
	}
	fmt.Fprintf(&b, "Data do exame: %s", p.Date.BR())
	if p.Expired {
		b.WriteString(" (receita vencida)")
	}
	b.WriteString("\n")
	writeEye(&b, "OD", p.OD)
	writeEye(&b, "OE", p.OE)
	if p.Notes != "" {
		fmt.Fprintf(&b, "Observações do exame: %s\n", p.Notes)
	}
	if lifestyle = strings.TrimSpace(lifestyle); lifestyle != "" {
		fmt.Fprintf(&b, "Rotina do cliente: %s\n", lifestyle)
	}
	return b.String()
}

func writeEye(b *strings.Builder, label string, e entity.EyePrescription) {
	fmt.Fprintf(b, "%s: esférico %s, cilíndrico %s, eixo %s", label, e.Spherical, e.Cylinder, e.Axis)
	if e.Addition != "" {
		fmt.Fprintf(b, ", adição %s", e.Addition)
	}
	if e.PupillaryDistance != "" {
		fmt.Fprintf(b, ", DNP %s", e.PupillaryDistance)
	}
	if e.FittingHeight != "" {
		fmt.Fprintf(b, ", altura %s", e.FittingHeight)
	}
	b.WriteString("\n")
}
