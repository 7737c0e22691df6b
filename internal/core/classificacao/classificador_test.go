package classificacao

import (
	"reflect"
	"testing"

	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

func registro(e1, s1, e2, s2 string) domain.RegistroDiario {
	return domain.RegistroDiario{
		Nome:           "MARIA",
		CPF:            "111",
		Entrada1:       e1,
		Saida1:         s1,
		Entrada2:       e2,
		Saida2:         s2,
		HorasPrevistas: "08:00",
	}
}

func TestClassificar(t *testing.T) {
	casos := []struct {
		nome      string
		reg       func() domain.RegistroDiario
		situacao  string
		validacao string
	}{
		{
			nome:      "dia normal completo",
			reg:       func() domain.RegistroDiario { return registro("08:00", "12:00", "13:00", "17:00") },
			situacao:  domain.SituacaoNormal,
			validacao: domain.ValidacaoCompleta,
		},
		{
			nome:      "hora extra",
			reg:       func() domain.RegistroDiario { return registro("08:00", "12:00", "13:00", "18:00") },
			situacao:  domain.SituacaoNormal,
			validacao: domain.ValidacaoHoraExtra,
		},
		{
			nome:      "só o primeiro par é presença parcial",
			reg:       func() domain.RegistroDiario { return registro("08:00", "12:00", "", "") },
			situacao:  domain.SituacaoParcial,
			validacao: domain.ValidacaoIncompleta,
		},
		{
			nome:     "justificativa na entrada vira situação",
			reg:      func() domain.RegistroDiario { return registro("Atestado", "", "", "") },
			situacao: "ATESTADO",
		},
		{
			nome:     "primeiro texto livre vence",
			reg:      func() domain.RegistroDiario { return registro("08:00", "abono", "falta", "") },
			situacao: "ABONO",
		},
		{
			nome: "incompleto com horas trabalhadas vira normal",
			reg: func() domain.RegistroDiario {
				r := registro("", "", "", "")
				r.TotalTrabalhado = "08:00"
				return r
			},
			situacao: domain.SituacaoNormal,
		},
		{
			nome: "sem batidas e sem horas é não escalado",
			reg: func() domain.RegistroDiario {
				r := registro("", "", "", "")
				r.TotalTrabalhado = "00:00"
				return r
			},
			situacao: domain.SituacaoNaoEscalado,
		},
		{
			nome: "traço na entrada vence as etapas anteriores",
			reg: func() domain.RegistroDiario {
				r := registro("15-02", "", "", "")
				r.TotalTrabalhado = "08:00"
				return r
			},
			situacao: domain.SituacaoNaoEscalado,
		},
		{
			nome: "dígito solto usa o previsto",
			reg: func() domain.RegistroDiario {
				r := registro("3", "", "", "")
				r.TotalTrabalhado = "00:00"
				r.Previsto = "folga"
				return r
			},
			situacao: "FOLGA",
		},
		{
			nome: "dígito solto com horas trabalhadas vira normal",
			reg: func() domain.RegistroDiario {
				r := registro("7", "", "", "")
				r.TotalTrabalhado = "06:30"
				return r
			},
			situacao: domain.SituacaoNormal,
		},
		{
			nome: "dígito solto sem previsto é não escalado",
			reg: func() domain.RegistroDiario {
				r := registro("", "12", "", "")
				return r
			},
			situacao: domain.SituacaoNaoEscalado,
		},
	}

	c := NovoClassificador(Opcoes{})
	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			r := tc.reg()
			c.Classificar(&r)
			if r.Situacao != tc.situacao {
				t.Errorf("situação: esperava %q, obteve %q", tc.situacao, r.Situacao)
			}
			if tc.validacao != "" && r.ValidacaoHoras != tc.validacao {
				t.Errorf("validação: esperava %q, obteve %q", tc.validacao, r.ValidacaoHoras)
			}
		})
	}
}

func TestOrdemDasEtapasImporta(t *testing.T) {
	base := registro("15-02", "", "", "")
	base.TotalTrabalhado = "08:00"

	correta := base
	NovoClassificador(Opcoes{}).Classificar(&correta)
	if correta.Situacao != domain.SituacaoNaoEscalado {
		t.Fatalf("ordem padrão: esperava %q, obteve %q", domain.SituacaoNaoEscalado, correta.Situacao)
	}

	invertido := &Classificador{}
	invertido.Adicionar(
		NovaEtapa(EtapaTracoEntrada, tracoEntrada),
		NovaEtapa(EtapaSituacaoInicial, situacaoInicial),
		NovaEtapa(EtapaReavaliacaoIncompleto, reavaliarIncompleto),
		NovaEtapa(EtapaCorrecao, corrigirSituacao),
		NovaEtapa(EtapaDigitoInicial, digitoInicial),
	)
	trocada := base
	invertido.Classificar(&trocada)
	if trocada.Situacao == correta.Situacao {
		t.Errorf("rodar o traço antes da situação inicial deveria mudar o resultado, obteve %q nos dois", trocada.Situacao)
	}
}

func TestTotalNegativoNaoCorrigido(t *testing.T) {
	// Turno que vira a noite: saída antes da entrada. O total fica negativo
	// e o dia aparece como carga incompleta.
	r := registro("22:00", "06:00", "", "")
	validarHoras(&r)
	if r.ValidacaoHoras != domain.ValidacaoIncompleta {
		t.Errorf("esperava %q, obteve %q", domain.ValidacaoIncompleta, r.ValidacaoHoras)
	}
}

func TestCorrecao(t *testing.T) {
	r := registro("", "12:00", "13:00", "")
	r.Situacao = "12:00"
	corrigirSituacao(&r)
	if r.Correcao != "12:00" {
		t.Errorf("correção: esperava 12:00, obteve %q", r.Correcao)
	}
	if r.Situacao != "12:00" {
		t.Errorf("situação com horário deveria virar a correção, obteve %q", r.Situacao)
	}

	vazio := registro("", "", "", "")
	vazio.Situacao = "ATESTADO"
	corrigirSituacao(&vazio)
	if vazio.Correcao != "" || vazio.Situacao != "ATESTADO" {
		t.Errorf("sem batidas a correção fica vazia e a situação não muda: %+v", vazio)
	}
}

func TestPreencherPrevisto(t *testing.T) {
	casos := []struct {
		previsto string
		ligado   bool
		esperado string
	}{
		{"FOLGA", true, "FOLGA"},
		{"FOLGA", false, domain.SituacaoNaoEscalado},
		{"-", true, domain.SituacaoNaoEscalado},
		{"", true, domain.SituacaoNaoEscalado},
		{"08:00", true, domain.SituacaoNaoEscalado},
	}

	for _, tc := range casos {
		r := registro("", "", "", "")
		r.Previsto = tc.previsto
		NovoClassificador(Opcoes{PreencherPrevisto: tc.ligado}).Classificar(&r)
		if r.Situacao != tc.esperado {
			t.Errorf("previsto %q (ligado=%v): esperava %q, obteve %q", tc.previsto, tc.ligado, tc.esperado, r.Situacao)
		}
	}
}

func TestPrevistoComHorarioNaoViraSituacao(t *testing.T) {
	r := registro("", "", "", "")
	r.TotalTrabalhado = "00:00"
	r.Previsto = "08:00"
	registros := []domain.RegistroDiario{r, registro("08:00", "12:00", "13:00", "17:00")}

	NovoClassificador(Opcoes{PreencherPrevisto: true}).ClassificarTodos(registros)

	if registros[0].Situacao != domain.SituacaoNaoEscalado {
		t.Errorf("situação: esperava %q, obteve %q", domain.SituacaoNaoEscalado, registros[0].Situacao)
	}
	if _, ok := registros[0].ContagemSituacoes["08:00"]; ok {
		t.Errorf("horário não pode virar coluna de contagem: %v", registros[0].ContagemSituacoes)
	}
}

func TestEtapas(t *testing.T) {
	esperado := []string{
		EtapaValidacaoHoras,
		EtapaSituacaoInicial,
		EtapaReavaliacaoIncompleto,
		EtapaTracoEntrada,
		EtapaCorrecao,
		EtapaDigitoInicial,
		EtapaPrevistoNaoEscalado,
	}
	if got := NovoClassificador(Opcoes{PreencherPrevisto: true}).Etapas(); !reflect.DeepEqual(got, esperado) {
		t.Errorf("esperava %v, obteve %v", esperado, got)
	}
	if got := NovoClassificador(Opcoes{}).Etapas(); len(got) != len(esperado)-1 {
		t.Errorf("sem a etapa opcional esperava %d etapas, obteve %d", len(esperado)-1, len(got))
	}
}

func TestContarSituacoesPorFuncionario(t *testing.T) {
	var registros []domain.RegistroDiario
	for i := 0; i < 3; i++ {
		registros = append(registros, domain.RegistroDiario{Nome: "ANA", CPF: "1", Situacao: domain.SituacaoNormal})
	}
	for i := 0; i < 2; i++ {
		registros = append(registros, domain.RegistroDiario{Nome: "ANA", CPF: "1", Situacao: domain.SituacaoNaoEscalado})
	}
	registros = append(registros, domain.RegistroDiario{Nome: "BETO", CPF: "2", Situacao: domain.SituacaoNormal})

	ContarSituacoes(registros)

	for i, r := range registros[:5] {
		if r.ContagemSituacoes[domain.SituacaoNormal] != 3 {
			t.Errorf("linha %d: Normal esperava 3, obteve %d", i, r.ContagemSituacoes[domain.SituacaoNormal])
		}
		if r.ContagemSituacoes[domain.SituacaoNaoEscalado] != 2 {
			t.Errorf("linha %d: Não escalado esperava 2, obteve %d", i, r.ContagemSituacoes[domain.SituacaoNaoEscalado])
		}
	}
	beto := registros[5].ContagemSituacoes
	if beto[domain.SituacaoNormal] != 1 || beto[domain.SituacaoNaoEscalado] != 0 {
		t.Errorf("contagem do BETO deveria ser só dele: %v", beto)
	}
}

func TestClassificarTodosRecalculaContagens(t *testing.T) {
	registros := []domain.RegistroDiario{
		registro("08:00", "12:00", "13:00", "17:00"),
		registro("FOLGA", "", "", ""),
	}
	NovoClassificador(Opcoes{}).ClassificarTodos(registros)

	if registros[0].ContagemSituacoes["FOLGA"] != 1 || registros[0].ContagemSituacoes[domain.SituacaoNormal] != 1 {
		t.Errorf("contagens inesperadas: %v", registros[0].ContagemSituacoes)
	}
}
