package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/domain"
	mdw "go-gin-gorm-blog/internal/transport/http/middleware"
	resp "go-gin-gorm-blog/internal/transport/http/response"
)

// EZ registers transactional actions on one router group.
type EZ struct {
	g    *gin.RouterGroup
	db   *gorm.DB
	log  *zap.Logger
	auth gin.HandlerFunc
}

// New binds actions to g. auth is the middleware run for actions with Auth or Admin set.
func New(g *gin.RouterGroup, db *gorm.DB, l *zap.Logger, auth gin.HandlerFunc) EZ {
	if l == nil {
		l = zap.NewNop()
	}
	return EZ{g: g, db: db, log: l, auth: auth}
}

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindForm  Binder = "form"
	BindURI   Binder = "uri"
	BindNone  Binder = "none"
)

// Action is one endpoint: I is the bound input, O the JSON output.
type Action[I any, O any] struct {
	Method string
	Path   string
	Binder Binder
	Auth   bool
	Admin  bool
	// Status defaults to 200.
	Status  int
	Handler func(c *gin.Context, tx *gorm.DB, in *I) (O, error)
	// After runs once the transaction has committed and before the response is written.
	After func(c *gin.Context, out O)
}

// RegisterAction mounts a. The handler runs inside a transaction on the request
// context that commits when it returns nil; the response is written after commit.
func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		if err := bind(c, a.Binder, &in); err != nil {
			_ = c.Error(err).SetType(gin.ErrorTypeBind)
			resp.Abort(c, resp.CodeBadRequest, err.Error())
			return
		}

		var out O
		err := e.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			o, err := a.Handler(c, tx, &in)
			if err != nil {
				return err
			}
			out = o
			return nil
		})
		if err != nil {
			Fail(c, err)
			return
		}
		if a.After != nil {
			a.After(c, out)
		}
		status := a.Status
		if status == 0 {
			status = http.StatusOK
		}
		c.JSON(status, out)
	}

	chain := make([]gin.HandlerFunc, 0, 3)
	if (a.Auth || a.Admin) && e.auth != nil {
		chain = append(chain, e.auth)
	}
	if a.Admin {
		chain = append(chain, mdw.RequireAdmin())
	}
	chain = append(chain, h)
	e.g.Handle(strings.ToUpper(a.Method), a.Path, chain...)
}

func bind(c *gin.Context, b Binder, in any) error {
	switch b {
	case BindJSON:
		return c.ShouldBindJSON(in)
	case BindQuery:
		return c.ShouldBindQuery(in)
	case BindForm:
		return c.ShouldBind(in)
	case BindURI:
		return c.ShouldBindUri(in)
	default:
		return nil
	}
}

// StatusOf maps an error to its HTTP status.
func StatusOf(err error) int {
	var de *domain.Error
	if !errors.As(err, &de) {
		return http.StatusInternalServerError
	}
	switch de.Kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Fail records err on the context and aborts with its status and message.
func Fail(c *gin.Context, err error) {
	status := StatusOf(err)
	_ = c.Error(err)
	resp.Abort(c, status, err.Error())
}

// CurrentUser returns the caller resolved by the auth middleware.
func CurrentUser(c *gin.Context) (*domain.User, error) {
	u, ok := mdw.CurrentUser(c)
	if !ok {
		return nil, domain.Unauthorized("not authenticated")
	}
	return u, nil
}

// IDParam is the input of actions addressed by /:id.
type IDParam struct {
	ID uint `uri:"id" binding:"required"`
}
