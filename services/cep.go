package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"
)

var (
	ErrInvalidCEP  = errors.New("invalid CEP")
	ErrCEPNotFound = errors.New("CEP not found")
)

var cepPattern = regexp.MustCompile(`^\d{8}$`)

// Address is a ViaCEP lookup result used to prefill the checkout form.
type Address struct {
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// CEPService resolves Brazilian postal codes against ViaCEP.
type CEPService struct {
	BaseURL    string
	httpClient *http.Client
}

func NewCEPService() *CEPService {
	return &CEPService{
		BaseURL: "https://viacep.com.br",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Lookup resolves a CEP. Input must already be digits only (8 of them).
func (cs *CEPService) Lookup(cep string) (*Address, error) {
	if !cepPattern.MatchString(cep) {
		return nil, ErrInvalidCEP
	}

	url := fmt.Sprintf("%s/ws/%s/json/", cs.BaseURL, cep)
	resp, err := cs.httpClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ViaCEP error: %s", string(body))
	}

	// ViaCEP answers 200 with {"erro": true} for unknown codes.
	var viaCEP struct {
		CEP          string `json:"cep"`
		Street       string `json:"logradouro"`
		Complement   string `json:"complemento"`
		Neighborhood string `json:"bairro"`
		City         string `json:"localidade"`
		State        string `json:"uf"`
		Erro         bool   `json:"erro"`
	}
	if err := json.Unmarshal(body, &viaCEP); err != nil {
		return nil, fmt.Errorf("error unmarshaling response: %v", err)
	}
	if viaCEP.Erro {
		return nil, ErrCEPNotFound
	}

	return &Address{
		CEP:          viaCEP.CEP,
		Street:       viaCEP.Street,
		Complement:   viaCEP.Complement,
		Neighborhood: viaCEP.Neighborhood,
		City:         viaCEP.City,
		State:        viaCEP.State,
	}, nil
}
