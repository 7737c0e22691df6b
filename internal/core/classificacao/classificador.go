// Package classificacao decide a situação final de cada dia de apontamento.
//
// A decisão é uma cascata de etapas em ordem fixa: cada etapa lê e escreve
// apenas o próprio registro e as etapas posteriores corrigem o resultado das
// anteriores. Trocar a ordem muda o resultado.
package classificacao

import (
	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

// Etapa é um passo da cascata de classificação.
type Etapa interface {
	Nome() string
	Aplicar(r *domain.RegistroDiario)
}

// EtapaFunc adapta uma função comum para Etapa.
type EtapaFunc struct {
	nome string
	fn   func(r *domain.RegistroDiario)
}

// NovaEtapa cria uma etapa nomeada a partir de uma função.
func NovaEtapa(nome string, fn func(r *domain.RegistroDiario)) EtapaFunc {
	return EtapaFunc{nome: nome, fn: fn}
}

func (e EtapaFunc) Nome() string                     { return e.nome }
func (e EtapaFunc) Aplicar(r *domain.RegistroDiario) { e.fn(r) }

// Opcoes liga ou desliga as etapas opcionais.
type Opcoes struct {
	// PreencherPrevisto troca "não escalado" pelo valor do campo previsto
	// quando ele tem conteúdo.
	PreencherPrevisto bool
}

// Classificador executa as etapas na ordem em que foram registradas.
type Classificador struct {
	etapas []Etapa
}

// NovoClassificador monta a cascata padrão.
func NovoClassificador(op Opcoes) *Classificador {
	c := &Classificador{}
	c.Adicionar(
		NovaEtapa(EtapaValidacaoHoras, validarHoras),
		NovaEtapa(EtapaSituacaoInicial, situacaoInicial),
		NovaEtapa(EtapaReavaliacaoIncompleto, reavaliarIncompleto),
		NovaEtapa(EtapaTracoEntrada, tracoEntrada),
		NovaEtapa(EtapaCorrecao, corrigirSituacao),
		NovaEtapa(EtapaDigitoInicial, digitoInicial),
	)
	if op.PreencherPrevisto {
		c.Adicionar(NovaEtapa(EtapaPrevistoNaoEscalado, previstoNaoEscalado))
	}
	return c
}

// Adicionar acrescenta etapas ao fim da cascata.
func (c *Classificador) Adicionar(etapas ...Etapa) {
	c.etapas = append(c.etapas, etapas...)
}

// Etapas devolve os nomes das etapas na ordem de execução.
func (c *Classificador) Etapas() []string {
	nomes := make([]string, len(c.etapas))
	for i, e := range c.etapas {
		nomes[i] = e.Nome()
	}
	return nomes
}

// Classificar roda a cascata inteira sobre um registro.
func (c *Classificador) Classificar(r *domain.RegistroDiario) {
	for _, e := range c.etapas {
		e.Aplicar(r)
	}
}

// ClassificarTodos classifica cada registro e depois recalcula as contagens
// por funcionário.
func (c *Classificador) ClassificarTodos(registros []domain.RegistroDiario) {
	for i := range registros {
		c.Classificar(&registros[i])
	}
	ContarSituacoes(registros)
}

// ContarSituacoes preenche, em cada registro, quantos dias daquele
// funcionário (nome + CPF) caíram em cada situação. Precisa de todos os
// registros do documento; rode de novo sempre que alguma situação mudar.
func ContarSituacoes(registros []domain.RegistroDiario) {
	porFuncionario := make(map[string]map[string]int)
	for i := range registros {
		chave := registros[i].ChaveFuncionario()
		if porFuncionario[chave] == nil {
			porFuncionario[chave] = make(map[string]int)
		}
		porFuncionario[chave][registros[i].Situacao]++
	}

	for i := range registros {
		contagem := porFuncionario[registros[i].ChaveFuncionario()]
		copia := make(map[string]int, len(contagem))
		for situacao, n := range contagem {
			copia[situacao] = n
		}
		registros[i].ContagemSituacoes = copia
	}
}
