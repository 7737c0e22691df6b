// internal/api/handlers/blitz_handler.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/LuisEduardoPedra/analisePonto/internal/api/responses"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/blitz"
	"github.com/LuisEduardoPedra/analisePonto/internal/core/relatorio"
	"github.com/LuisEduardoPedra/analisePonto/internal/domain"
)

const campoArquivoPDF = "pdfFile"

type BlitzHandler struct {
	service      blitz.Service
	limiteUpload int64
}

// NewBlitzHandler: limiteUpload em bytes; zero desliga a verificação.
func NewBlitzHandler(service blitz.Service, limiteUpload int64) *BlitzHandler {
	return &BlitzHandler{service: service, limiteUpload: limiteUpload}
}

// HandleAnalisar recebe o PDF e devolve consolidado e registros em JSON.
func (h *BlitzHandler) HandleAnalisar(c *gin.Context) {
	res, ok := h.processarUpload(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandlePaginas processa páginas já extraídas, enviadas em JSON.
func (h *BlitzHandler) HandlePaginas(c *gin.Context) {
	paginas, err := blitz.DecodificarPaginas(c.Request.Body)
	if err != nil {
		h.responderErro(c, err)
		return
	}

	res, err := h.service.ProcessarPaginas(c.Request.Context(), paginas)
	if err != nil {
		h.responderErro(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// HandleExportar recebe o PDF e devolve um zip com as planilhas
// (?formato=csv troca as planilhas por CSV).
func (h *BlitzHandler) HandleExportar(c *gin.Context) {
	res, ok := h.processarUpload(c)
	if !ok {
		return
	}

	arquivos, err := h.service.Exportar(res, c.DefaultQuery("formato", blitz.FormatoXLSX))
	if err != nil {
		h.responderErro(c, err)
		return
	}
	zip, err := relatorio.EmpacotarZip(arquivos...)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Erro ao gerar o arquivo zip", err.Error())
		return
	}

	fileName := fmt.Sprintf("blitz_%s.zip", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	c.Data(http.StatusOK, "application/zip", zip)
}

func (h *BlitzHandler) processarUpload(c *gin.Context) (*domain.ResultadoBlitz, bool) {
	fileHeader, err := c.FormFile(campoArquivoPDF)
	if err != nil {
		responses.Error(c, http.StatusBadRequest, "Arquivo PDF não encontrado ou inválido")
		return nil, false
	}
	if h.limiteUpload > 0 && fileHeader.Size > h.limiteUpload {
		responses.Error(c, http.StatusRequestEntityTooLarge, "Arquivo PDF maior que o permitido")
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível abrir o arquivo PDF")
		return nil, false
	}
	defer file.Close()

	conteudo, err := io.ReadAll(file)
	if err != nil {
		responses.Error(c, http.StatusInternalServerError, "Não foi possível ler o arquivo PDF")
		return nil, false
	}

	res, err := h.service.ProcessarPDF(c.Request.Context(), conteudo)
	if err != nil {
		h.responderErro(c, err)
		return nil, false
	}
	return res, true
}

func (h *BlitzHandler) responderErro(c *gin.Context, err error) {
	switch {
	case errors.Is(err, blitz.ErrPaginasExcedidas):
		responses.Error(c, http.StatusRequestEntityTooLarge, "Documento com páginas demais", err.Error())
	case errors.Is(err, blitz.ErrPDFSemTexto):
		responses.Error(c, http.StatusUnprocessableEntity, "O PDF não tem texto extraível", err.Error())
	case errors.Is(err, blitz.ErrEntradaInvalida):
		responses.Error(c, http.StatusBadRequest, "Entrada inválida", err.Error())
	default:
		responses.Error(c, http.StatusInternalServerError, "Erro ao processar o documento", err.Error())
	}
}
