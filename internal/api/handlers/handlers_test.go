package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/LuisEduardoPedra/analisePonto/internal/core/auth"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/blitz"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/relatorio"
	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

type blitzFalso struct {
	res      *domain.ResultadoBlitz
	err      error
	recebido []byte
	paginas  []domain.Pagina
	formatos []string
}

func (s *blitzFalso) ProcessarPaginas(_ context.Context, paginas []domain.Pagina) (*domain.ResultadoBlitz, error) {
	s.paginas = paginas
	return s.res, s.err
}

func (s *blitzFalso) ProcessarPDF(_ context.Context, conteudo []byte) (*domain.ResultadoBlitz, error) {
	s.recebido = conteudo
	return s.res, s.err
}

func (s *blitzFalso) Exportar(res *domain.ResultadoBlitz, formato string) ([]relatorio.Arquivo, error) {
	s.formatos = append(s.formatos, formato)
	return []relatorio.Arquivo{
		{Nome: relatorio.NomeConsolidado + "." + formato, Conteudo: []byte("c")},
		{Nome: relatorio.NomeDetalhe + "." + formato, Conteudo: []byte("d")},
	}, nil
}

func (s *blitzFalso) AtualizarOpcoes(blitz.Opcoes) {}
func (s *blitzFalso) Temas() []string              { return nil }

func novoResultado() *domain.ResultadoBlitz {
	nome := "ANA"
	return &domain.ResultadoBlitz{
		Funcionarios: []domain.ResumoFuncionario{{Pagina: 1, Identidade: domain.Identidade{Nome: &nome}, Totais: domain.NovosTotais(), Status: domain.StatusOK}},
		Registros:    []domain.RegistroDiario{{Pagina: 1, Nome: "ANA", Situacao: domain.SituacaoNormal}},
	}
}

func uploadPDF(t *testing.T, url string, conteudo []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(campoArquivoPDF, "ponto.pdf")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(conteudo)
	w.Close()

	req := httptest.NewRequest("POST", url, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func roteador(s blitz.Service, limite int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBlitzHandler(s, limite)
	r := gin.New()
	r.POST("/analisar", h.HandleAnalisar)
	r.POST("/paginas", h.HandlePaginas)
	r.POST("/exportar", h.HandleExportar)
	return r
}

func TestHandleAnalisar(t *testing.T) {
	s := &blitzFalso{res: novoResultado()}
	w := httptest.NewRecorder()
	roteador(s, 0).ServeHTTP(w, uploadPDF(t, "/analisar", []byte("%PDF-1.7")))

	if w.Code != http.StatusOK {
		t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
	}
	if string(s.recebido) != "%PDF-1.7" {
		t.Errorf("conteúdo repassado: %q", s.recebido)
	}

	var res domain.ResultadoBlitz
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("JSON inválido: %v", err)
	}
	if len(res.Funcionarios) != 1 || domain.Valor(res.Funcionarios[0].Nome) != "ANA" {
		t.Errorf("resultado inesperado: %+v", res)
	}
}

func TestHandleAnalisarErros(t *testing.T) {
	casos := []struct {
		nome   string
		err    error
		limite int64
		status int
	}{
		{"sem texto", blitz.ErrPDFSemTexto, 0, http.StatusUnprocessableEntity},
		{"páginas demais", fmt.Errorf("%w: 200 páginas", blitz.ErrPaginasExcedidas), 0, http.StatusRequestEntityTooLarge},
		{"entrada inválida", blitz.ErrEntradaInvalida, 0, http.StatusBadRequest},
		{"falha interna", fmt.Errorf("disco cheio"), 0, http.StatusInternalServerError},
		{"arquivo grande", nil, 4, http.StatusRequestEntityTooLarge},
	}

	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			s := &blitzFalso{res: novoResultado(), err: tc.err}
			w := httptest.NewRecorder()
			roteador(s, tc.limite).ServeHTTP(w, uploadPDF(t, "/analisar", []byte("%PDF-1.7")))

			if w.Code != tc.status {
				t.Fatalf("esperava %d, obteve %d: %s", tc.status, w.Code, w.Body.String())
			}
			if !strings.Contains(w.Body.String(), `"error"`) {
				t.Errorf("corpo sem campo error: %s", w.Body.String())
			}
		})
	}
}

func TestHandleAnalisarSemArquivo(t *testing.T) {
	w := httptest.NewRecorder()
	roteador(&blitzFalso{}, 0).ServeHTTP(w, httptest.NewRequest("POST", "/analisar", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("esperava 400, obteve %d", w.Code)
	}
}

func TestHandlePaginas(t *testing.T) {
	s := &blitzFalso{res: novoResultado()}
	corpo := `[{"numero": 1, "linhas": ["NOME DO FUNCIONÁRIO: ANA"], "tabela": [["DATA"], ["01/03/2024 - SEX"]]}]`

	w := httptest.NewRecorder()
	roteador(s, 0).ServeHTTP(w, httptest.NewRequest("POST", "/paginas", strings.NewReader(corpo)))
	if w.Code != http.StatusOK {
		t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
	}
	if len(s.paginas) != 1 || s.paginas[0].Linhas[0] != "NOME DO FUNCIONÁRIO: ANA" {
		t.Errorf("páginas repassadas: %+v", s.paginas)
	}

	w = httptest.NewRecorder()
	roteador(s, 0).ServeHTTP(w, httptest.NewRequest("POST", "/paginas", strings.NewReader(`{"linhas": 3}`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("JSON fora do esquema: esperava 400, obteve %d", w.Code)
	}
}

func TestHandleExportar(t *testing.T) {
	s := &blitzFalso{res: novoResultado()}
	w := httptest.NewRecorder()
	roteador(s, 0).ServeHTTP(w, uploadPDF(t, "/exportar?formato=csv", []byte("%PDF-1.7")))

	if w.Code != http.StatusOK {
		t.Fatalf("esperava 200, obteve %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("content-type: %q", ct)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Disposition"), "attachment; filename=blitz_") {
		t.Errorf("content-disposition: %q", w.Header().Get("Content-Disposition"))
	}
	if len(s.formatos) != 1 || s.formatos[0] != "csv" {
		t.Errorf("formato repassado: %v", s.formatos)
	}

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	if err != nil {
		t.Fatalf("zip inválido: %v", err)
	}
	if len(zr.File) != 2 || zr.File[0].Name != "consolidado_blitz.csv" {
		t.Errorf("conteúdo do zip inesperado")
	}
}

type authFalso struct {
	err error
}

func (a authFalso) Login(_ context.Context, username, _ string) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	return "token-" + username, nil
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	casos := []struct {
		nome   string
		svc    auth.Service
		corpo  string
		status int
	}{
		{"sucesso", authFalso{}, `{"username": "ana", "password": "x"}`, http.StatusOK},
		{"sem senha", authFalso{}, `{"username": "ana"}`, http.StatusBadRequest},
		{"credencial inválida", authFalso{err: auth.ErrCredenciaisInvalidas}, `{"username": "ana", "password": "x"}`, http.StatusUnauthorized},
		{"falha no banco", authFalso{err: fmt.Errorf("timeout")}, `{"username": "ana", "password": "x"}`, http.StatusInternalServerError},
	}

	for _, tc := range casos {
		t.Run(tc.nome, func(t *testing.T) {
			r := gin.New()
			r.POST("/login", NewAuthHandler(tc.svc).Login)

			req := httptest.NewRequest("POST", "/login", strings.NewReader(tc.corpo))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("esperava %d, obteve %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.status == http.StatusOK && !strings.Contains(w.Body.String(), `"token":"token-ana"`) {
				t.Errorf("corpo inesperado: %s", w.Body.String())
			}
		})
	}
}
