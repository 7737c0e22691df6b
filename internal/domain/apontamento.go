// internal/domain/apontamento.go
package domain

// Situações finais atribuídas a um dia de apontamento.
const (
	SituacaoNormal      = "Normal workday"
	SituacaoParcial     = "Partial presence"
	SituacaoIncompleto  = "Incomplete day"
	SituacaoNaoEscalado = "Not scheduled"
)

// Resultado da comparação entre horas batidas e horas previstas.
const (
	ValidacaoHoraExtra  = "Full workload — overtime worked"
	ValidacaoCompleta   = "Full workload"
	ValidacaoIncompleta = "Incomplete workload"
)

const (
	StatusOK  = "OK"
	StatusNOK = "NOK"

	TempoZerado         = "00:00"
	PrefixoQtdSituacao  = "Qtd - "
	MarcadorLinhaTotais = "TOTAIS"
	SeparadorDiaSemana  = " - "
	TracoNaoEscalado    = "-"
)

// Pagina é o que o extrator externo entrega para cada página do PDF:
// as linhas de texto em ordem e, opcionalmente, a tabela de marcações
// (primeira linha = cabeçalho). Células vazias equivalem a células nulas.
type Pagina struct {
	Numero int        `json:"numero"`
	Linhas []string   `json:"linhas"`
	Tabela [][]string `json:"tabela,omitempty"`
}

// Identidade agrupa os campos do cabeçalho do funcionário. Ponteiro nil
// significa que o rótulo não foi encontrado na página.
type Identidade struct {
	Nome        *string `json:"nome"`
	CPF         *string `json:"cpf"`
	Matricula   *string `json:"matricula"`
	Cargo       *string `json:"cargo"`
	CentroCusto *string `json:"centro_custo"`
}

// Totais vem da linha TOTAIS da tabela da página.
type Totais struct {
	TotalTrabalhado string `json:"total_trabalhado"`
	TotalNoturno    string `json:"total_noturno"`
	HorasPrevistas  string `json:"horas_previstas"`
	Faltas          int    `json:"faltas"`
	HorasAtraso     string `json:"horas_atraso"`
	Extra50         string `json:"extra_50"`
	DescontaDSR     int    `json:"desconta_dsr"`
}

// NovosTotais devolve os totais padrão de uma página sem linha TOTAIS.
func NovosTotais() Totais {
	return Totais{
		TotalTrabalhado: TempoZerado,
		TotalNoturno:    TempoZerado,
		HorasPrevistas:  TempoZerado,
		HorasAtraso:     TempoZerado,
		Extra50:         TempoZerado,
	}
}

// ResumoFuncionario é o consolidado de um funcionário em uma página.
type ResumoFuncionario struct {
	Pagina int `json:"pagina"`
	Identidade
	Totais
	Temas  map[string]int `json:"temas"`
	Status string         `json:"status"`
}

// AtualizarStatus aplica a regra OK/NOK sobre faltas e desconto de DSR.
func (r *ResumoFuncionario) AtualizarStatus() {
	if r.Faltas > 0 || r.DescontaDSR > 0 {
		r.Status = StatusNOK
		return
	}
	r.Status = StatusOK
}

// RegistroDiario é um dia da tabela de marcações de um funcionário.
// Os campos brutos chegam como texto livre; os derivados são preenchidos
// pelo classificador.
type RegistroDiario struct {
	Pagina          int    `json:"pagina"`
	Nome            string `json:"nome"`
	CPF             string `json:"cpf"`
	Data            string `json:"data"`
	DiaSemana       string `json:"dia_semana"`
	Previsto        string `json:"previsto"`
	Entrada1        string `json:"entrada_1"`
	Saida1          string `json:"saida_1"`
	Entrada2        string `json:"entrada_2"`
	Saida2          string `json:"saida_2"`
	TotalTrabalhado string `json:"total_trabalhado"`
	TotalNoturno    string `json:"total_noturno"`
	HorasPrevistas  string `json:"horas_previstas"`
	Faltas          string `json:"faltas"`
	HorasAtraso     string `json:"horas_atraso"`
	Extra50         string `json:"extra_50"`
	DescontaDSR     string `json:"desconta_dsr"`

	ValidacaoHoras    string         `json:"validacao_horas"`
	Situacao          string         `json:"situacao"`
	Correcao          string         `json:"correcao"`
	ContagemSituacoes map[string]int `json:"contagem_situacoes,omitempty"`
}

// Batidas devolve as quatro marcações na ordem de prioridade das regras.
func (r *RegistroDiario) Batidas() [4]string {
	return [4]string{r.Entrada1, r.Saida1, r.Entrada2, r.Saida2}
}

// ChaveFuncionario identifica o funcionário para as contagens por situação.
func (r *RegistroDiario) ChaveFuncionario() string {
	return r.Nome + "|" + r.CPF
}

// ResultadoBlitz é a saída completa do processamento de um documento. Temas
// guarda o vocabulário em vigor quando o documento foi processado.
type ResultadoBlitz struct {
	Funcionarios []ResumoFuncionario `json:"funcionarios"`
	Registros    []RegistroDiario    `json:"registros"`
	Temas        []string            `json:"temas,omitempty"`
}

// Valor devolve o conteúdo de um campo opcional, ou "" quando ausente.
func Valor(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
