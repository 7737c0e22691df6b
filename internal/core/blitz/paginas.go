package blitz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

// esquemaPaginas descreve a entrada JSON: uma lista de páginas, ou um objeto
// {"paginas": [...]}. Células nulas são aceitas e viram texto vazio.
const esquemaPaginas = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$defs": {
    "pagina": {
      "type": "object",
      "properties": {
        "numero": {"type": "integer", "minimum": 0},
        "linhas": {"type": "array", "items": {"type": "string"}},
        "tabela": {
          "type": ["array", "null"],
          "items": {"type": "array", "items": {"type": ["string", "null"]}}
        }
      },
      "required": ["linhas"]
    },
    "lista": {"type": "array", "items": {"$ref": "#/$defs/pagina"}}
  },
  "oneOf": [
    {"$ref": "#/$defs/lista"},
    {
      "type": "object",
      "properties": {"paginas": {"$ref": "#/$defs/lista"}},
      "required": ["paginas"]
    }
  ]
}`

var validadorPaginas = compilarEsquema()

func compilarEsquema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("paginas.json", strings.NewReader(esquemaPaginas)); err != nil {
		panic(fmt.Sprintf("esquema de páginas inválido: %v", err))
	}
	return compiler.MustCompile("paginas.json")
}

type envelopePaginas struct {
	Paginas []paginaJSON `json:"paginas"`
}

type paginaJSON struct {
	Numero int         `json:"numero"`
	Linhas []string    `json:"linhas"`
	Tabela [][]*string `json:"tabela"`
}

// DecodificarPaginas lê as páginas já extraídas em JSON, valida contra o
// esquema e troca células nulas por texto vazio.
func DecodificarPaginas(r io.Reader) ([]domain.Pagina, error) {
	dados, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler páginas: %w", err)
	}

	var doc any
	if err := json.Unmarshal(dados, &doc); err != nil {
		return nil, fmt.Errorf("%w: JSON malformado: %v", ErrEntradaInvalida, err)
	}
	if err := validadorPaginas.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntradaInvalida, err)
	}

	var brutas []paginaJSON
	if bytes.HasPrefix(bytes.TrimSpace(dados), []byte("[")) {
		err = json.Unmarshal(dados, &brutas)
	} else {
		var env envelopePaginas
		err = json.Unmarshal(dados, &env)
		brutas = env.Paginas
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntradaInvalida, err)
	}

	paginas := make([]domain.Pagina, len(brutas))
	for i, b := range brutas {
		paginas[i] = domain.Pagina{Numero: b.Numero, Linhas: b.Linhas}
		if paginas[i].Numero == 0 {
			paginas[i].Numero = i + 1
		}
		for _, linha := range b.Tabela {
			celulas := make([]string, len(linha))
			for j, c := range linha {
				celulas[j] = domain.Valor(c)
			}
			paginas[i].Tabela = append(paginas[i].Tabela, celulas)
		}
	}
	return paginas, nil
}
