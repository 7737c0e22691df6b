// Package horario normaliza os valores de hora ("HH:MM") que aparecem nas
// tabelas de apontamento. Nenhuma função aqui devolve erro: valor inválido
// vira zero.
package horario

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

var (
	tempoCanonicoRegex = regexp.MustCompile(`^\d{1,3}:\d{2}$`)
	tempoLivreRegex    = regexp.MustCompile(`(\d{1,3}):(\d{2})`)
	digitosRegex       = regexp.MustCompile(`\d+`)
)

// PadronizarTempo devolve o valor aparado se estiver no formato H{1,3}:MM,
// senão "00:00".
func PadronizarTempo(valor string) string {
	v := strings.TrimSpace(valor)
	if tempoCanonicoRegex.MatchString(v) {
		return v
	}
	return domain.TempoZerado
}

// ParaMinutos converte um texto de hora em minutos da forma mais tolerante
// possível. Primeiro procura H{1,3}:MM em qualquer ponto do texto; se não
// achar, usa as duas primeiras sequências de dígitos como horas e minutos
// (uma sequência só conta como horas). Sem dígitos, devolve 0.
func ParaMinutos(valor string) int {
	if m := tempoLivreRegex.FindStringSubmatch(valor); m != nil {
		return minutos(m[1], m[2])
	}

	partes := digitosRegex.FindAllString(valor, 2)
	switch len(partes) {
	case 0:
		return 0
	case 1:
		return minutos(partes[0], "0")
	default:
		return minutos(partes[0], partes[1])
	}
}

func minutos(h, m string) int {
	horas, err := strconv.Atoi(h)
	if err != nil {
		return 0
	}
	mins, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return horas*60 + mins
}

// EhHorario diz se o valor é um horário de relógio válido: exatamente um
// ':', os dois lados só com dígitos, hora em [0,24) e minuto em [0,60).
// É o que separa uma batida real de uma justificativa escrita na célula.
func EhHorario(valor string) bool {
	partes := strings.Split(valor, ":")
	if len(partes) != 2 {
		return false
	}
	if !soDigitos(partes[0]) || !soDigitos(partes[1]) {
		return false
	}
	h, err := strconv.Atoi(partes[0])
	if err != nil {
		return false
	}
	m, err := strconv.Atoi(partes[1])
	if err != nil {
		return false
	}
	return h >= 0 && h < 24 && m >= 0 && m < 60
}

// EhTempoTrabalhado indica um total de horas válido e diferente de zero.
func EhTempoTrabalhado(valor string) bool {
	return EhHorario(valor) && valor != domain.TempoZerado
}

func soDigitos(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
