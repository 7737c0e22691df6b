package relatorio

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const abaPadrao = "Sheet1"

// EscreverXLSX grava cada tabela em uma aba da mesma planilha.
func EscreverXLSX(tabelas ...Tabela) ([]byte, error) {
	if len(tabelas) == 0 {
		return nil, fmt.Errorf("nenhuma tabela para exportar")
	}

	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tabelas {
		aba := nomeAba(t.Nome, i)
		if i == 0 {
			if err := f.SetSheetName(abaPadrao, aba); err != nil {
				return nil, fmt.Errorf("erro ao renomear aba %s: %w", aba, err)
			}
		} else if _, err := f.NewSheet(aba); err != nil {
			return nil, fmt.Errorf("erro ao criar aba %s: %w", aba, err)
		}

		if err := escreverAba(f, aba, t); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar planilha: %w", err)
	}
	return buf.Bytes(), nil
}

func escreverAba(f *excelize.File, aba string, t Tabela) error {
	sw, err := f.NewStreamWriter(aba)
	if err != nil {
		return fmt.Errorf("erro ao abrir aba %s: %w", aba, err)
	}

	cabecalho := make([]any, len(t.Colunas))
	for i, c := range t.Colunas {
		cabecalho[i] = c
	}
	if err := sw.SetRow("A1", cabecalho); err != nil {
		return fmt.Errorf("erro ao escrever cabeçalho da aba %s: %w", aba, err)
	}

	for i, linha := range t.Linhas {
		celula, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(celula, linha); err != nil {
			return fmt.Errorf("erro ao escrever linha %d da aba %s: %w", i+2, aba, err)
		}
	}
	return sw.Flush()
}

// Excel limita o nome da aba a 31 caracteres.
func nomeAba(nome string, i int) string {
	if nome == "" {
		return fmt.Sprintf("Tabela%d", i+1)
	}
	r := []rune(nome)
	if len(r) > 31 {
		r = r[:31]
	}
	return string(r)
}

// EscreverCSV gera o CSV separado por ';' em Windows-1252, o formato que o
// Excel em português abre sem configurar nada. Caracteres sem representação
// são substituídos.
func EscreverCSV(t Tabela) ([]byte, error) {
	var buffer bytes.Buffer
	encoder := encoding.ReplaceUnsupported(charmap.Windows1252.NewEncoder())
	tw := transform.NewWriter(&buffer, encoder)
	writer := csv.NewWriter(tw)
	writer.Comma = ';'

	if err := writer.Write(t.Colunas); err != nil {
		return nil, err
	}
	for _, linha := range t.Linhas {
		registro := make([]string, len(linha))
		for i, v := range linha {
			registro[i] = fmt.Sprint(v)
		}
		if err := writer.Write(registro); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	if err := tw.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// Arquivo é um item do pacote zip de exportação.
type Arquivo struct {
	Nome     string
	Conteudo []byte
}

// EmpacotarZip junta os arquivos gerados em um único zip.
func EmpacotarZip(arquivos ...Arquivo) ([]byte, error) {
	var buffer bytes.Buffer
	zw := zip.NewWriter(&buffer)
	for _, a := range arquivos {
		w, err := zw.Create(a.Nome)
		if err != nil {
			return nil, fmt.Errorf("erro ao adicionar %s ao zip: %w", a.Nome, err)
		}
		if _, err := w.Write(a.Conteudo); err != nil {
			return nil, fmt.Errorf("erro ao gravar %s no zip: %w", a.Nome, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// ExportarPlanilhas gera consolidado_blitz.xlsx e detalhe_funcionarios.xlsx,
// um arquivo por tabela.
func ExportarPlanilhas(tabelas ...Tabela) ([]Arquivo, error) {
	var arquivos []Arquivo
	for _, t := range tabelas {
		conteudo, err := EscreverXLSX(t)
		if err != nil {
			return nil, err
		}
		arquivos = append(arquivos, Arquivo{Nome: t.Nome + ".xlsx", Conteudo: conteudo})
	}
	return arquivos, nil
}

// ExportarCSV gera um .csv por tabela.
func ExportarCSV(tabelas ...Tabela) ([]Arquivo, error) {
	var arquivos []Arquivo
	for _, t := range tabelas {
		conteudo, err := EscreverCSV(t)
		if err != nil {
			return nil, fmt.Errorf("erro ao gerar CSV %s: %w", t.Nome, err)
		}
		arquivos = append(arquivos, Arquivo{Nome: t.Nome + ".csv", Conteudo: conteudo})
	}
	return arquivos, nil
}
