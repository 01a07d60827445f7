package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quantumauth-io/quantum-go-utils/log"

	"github.com/quantumauth-io/typed-data-signer/internal/session"
	"github.com/quantumauth-io/typed-data-signer/internal/signer"
	"github.com/quantumauth-io/typed-data-signer/internal/templates"
	"github.com/quantumauth-io/typed-data-signer/internal/typeddata"
)

type Handler struct {
	service *signer.Service
	session *session.Session
}

func NewHandler(service *signer.Service, sess *session.Session) *Handler {
	return &Handler{
		service: service,
		session: sess,
	}
}

func (h *Handler) Health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// GET /api/methods
func (h *Handler) Methods(c *gin.Context) {
	methods := typeddata.Methods()
	out := make([]methodOut, 0, len(methods))
	for _, m := range methods {
		out = append(out, methodOut{
			Method:  m.WireName(),
			Label:   m.Label(),
			Default: m == typeddata.DefaultMethod,
		})
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/templates?method=v4
func (h *Handler) Templates(c *gin.Context) {
	raw := c.Query("method")
	if raw == "" {
		c.JSON(http.StatusOK, templates.All())
		return
	}
	m, err := typeddata.ParseMethod(raw)
	if err != nil {
		writeRPCError(c, http.StatusBadRequest, JSONRPCErrorCodeInvalidParams, HTTPErrorUnknownMethodText, raw)
		return
	}
	c.JSON(http.StatusOK, templates.For(m))
}

// POST /api/typeddata/validate
func (h *Handler) Validate(c *gin.Context) {
	var req typedDataReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeRPCError(c, http.StatusBadRequest, JSONRPCErrorCodeInvalidRequest, HTTPErrorInvalidRequestText, err.Error())
		return
	}

	var err error
	if req.Live {
		err = typeddata.CheckLive(req.JSON)
	} else {
		_, err = typeddata.Parse(req.JSON)
	}
	if err != nil {
		c.JSON(http.StatusOK, validateResp{Kind: typeddata.KindOf(err).String(), Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, validateResp{Valid: true})
}

// POST /api/typeddata/format
func (h *Handler) Format(c *gin.Context) {
	var req typedDataReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeRPCError(c, http.StatusBadRequest, JSONRPCErrorCodeInvalidRequest, HTTPErrorInvalidRequestText, err.Error())
		return
	}
	pretty, err := typeddata.Format(req.JSON)
	if err != nil {
		writeRPCError(c, http.StatusBadRequest, JSONRPCErrorCodeInvalidParams, HTTPErrorInvalidJSONText, err.Error())
		return
	}
	c.JSON(http.StatusOK, formatResp{JSON: pretty})
}

// POST /api/sign
func (h *Handler) Sign(c *gin.Context) {
	var req signReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeRPCError(c, http.StatusBadRequest, JSONRPCErrorCodeInvalidRequest, HTTPErrorInvalidRequestText, err.Error())
		return
	}

	method := typeddata.DefaultMethod
	if req.Method != "" {
		m, err := typeddata.ParseMethod(req.Method)
		if err != nil {
			writeRPCError(c, http.StatusBadRequest, JSONRPCErrorCodeInvalidParams, HTTPErrorUnknownMethodText, req.Method)
			return
		}
		method = m
	}

	account, caps := h.session.Current()
	out := h.service.Sign(c.Request.Context(), method, req.JSON, account, caps)
	if !out.OK() {
		c.JSON(http.StatusUnprocessableEntity, out)
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/logs
func (h *Handler) Logs(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Events().Entries())
}

// GET /api/wallet
func (h *Handler) Wallet(c *gin.Context) {
	c.JSON(http.StatusOK, h.session.State())
}

// POST /api/wallet/connect
func (h *Handler) Connect(c *gin.Context) {
	var req connectReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeRPCError(c, http.StatusBadRequest, JSONRPCErrorCodeInvalidRequest, HTTPErrorInvalidRequestText, err.Error())
			return
		}
	}

	state, err := h.session.Connect(c.Request.Context(), req.Account)
	if err != nil {
		log.Error("wallet connect failed", "error", err, "request_id", c.GetString(requestIDKey))
		writeRPCError(c, http.StatusBadGateway, JSONRPCErrorCodeInternalError, WalletConnectFailedText, err.Error())
		return
	}
	c.JSON(http.StatusOK, state)
}

// POST /api/wallet/disconnect
func (h *Handler) Disconnect(c *gin.Context) {
	h.session.Disconnect()
	c.JSON(http.StatusOK, h.session.State())
}
