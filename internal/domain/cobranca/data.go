package cobranca

import (
	"fmt"
	"time"
)

// FormatoData é o formato de data aceito e emitido pela API (ISO-8601).
const FormatoData = "2006-01-02"

// Data é uma data civil (sem hora, sem fuso). O valor zero representa
// "sem data" e serializa como string vazia, que é o que a API espera nos
// encargos isentos.
type Data struct {
	t time.Time
}

// DataDe constrói uma Data a partir de um time.Time, descartando hora e fuso.
func DataDe(t time.Time) Data {
	if t.IsZero() {
		return Data{}
	}
	return Data{t: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// NovaData constrói uma Data de calendário.
func NovaData(ano int, mes time.Month, dia int) Data {
	return Data{t: time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)}
}

// ParseData converte uma string ISO-8601 (AAAA-MM-DD) em Data.
// String vazia devolve a Data zero ("sem data"). A conversão é estrita:
// "2023-02-30" é rejeitado.
func ParseData(s string) (Data, error) {
	if s == "" {
		return Data{}, nil
	}
	t, err := time.Parse(FormatoData, s)
	if err != nil {
		return Data{}, fmt.Errorf("data %q não está no formato AAAA-MM-DD: %w", s, err)
	}
	return Data{t: t}, nil
}

// Vazia informa se a data ainda não foi definida.
func (d Data) Vazia() bool { return d.t.IsZero() }

// Depois informa se d é estritamente posterior a o.
func (d Data) Depois(o Data) bool { return d.t.After(o.t) }

// Antes informa se d é estritamente anterior a o.
func (d Data) Antes(o Data) bool { return d.t.Before(o.t) }

// Igual informa se as duas datas caem no mesmo dia.
func (d Data) Igual(o Data) bool { return d.t.Equal(o.t) }

// MaisDias devolve a data deslocada em dias corridos.
func (d Data) MaisDias(n int) Data {
	if d.Vazia() {
		return d
	}
	return Data{t: d.t.AddDate(0, 0, n)}
}

// Time expõe o instante subjacente (meia-noite UTC).
func (d Data) Time() time.Time { return d.t }

// String devolve AAAA-MM-DD, ou "" para a Data zero.
func (d Data) String() string {
	if d.Vazia() {
		return ""
	}
	return d.t.Format(FormatoData)
}

// MarshalJSON serializa no formato da API: "AAAA-MM-DD" ou "".
func (d Data) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON aceita "AAAA-MM-DD" ou "" (sem data).
func (d *Data) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("data JSON inválida: %s", s)
	}
	parsed, err := ParseData(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
