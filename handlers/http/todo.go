package httpHandler

import (
	"net/http"
	"todo-server/usecases"
	"todo-server/views"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	todo *usecases.TodoUseCase
	log  *log.Logger
}

func NewTodoHandler(todo *usecases.TodoUseCase, l *log.Logger) *TodoHandler {
	return &TodoHandler{todo: todo, log: l.With("handler", "todo")}
}

func (h *TodoHandler) render(c *gin.Context, view *usecases.ListView) {
	c.HTML(http.StatusOK, views.List, gin.H{
		"listTitle": view.Title,
		"listRef":   view.Ref.Name(),
		"newItems":  view.Items,
		"name":      view.FirstName,
		"listNames": view.ListNames,
	})
}

// Home handles GET /
func (h *TodoHandler) Home(c *gin.Context) {
	view, seeded, err := h.todo.Home(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if seeded {
		c.Redirect(http.StatusFound, "/")
		return
	}
	h.render(c, view)
}

// AddItem handles POST /
func (h *TodoHandler) AddItem(c *gin.Context) {
	ref := h.todo.ParseRef(c.PostForm("switch"))
	if _, err := h.todo.AddItem(c.Request.Context(), currentUserID(c), ref, c.PostForm("newTask")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, ref.Path())
}

// DeleteItem handles POST /delete
func (h *TodoHandler) DeleteItem(c *gin.Context) {
	ref := h.todo.ParseRef(c.PostForm("listName"))
	if err := h.todo.DeleteItem(c.Request.Context(), currentUserID(c), ref, c.PostForm("checkbox")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, ref.Path())
}

// CreateList handles POST /createList
func (h *TodoHandler) CreateList(c *gin.Context) {
	ref, created, err := h.todo.CreateList(c.Request.Context(), currentUserID(c), c.PostForm("listName"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if created {
		h.log.Debug("list created", "user", currentUserID(c), "list", ref.Name())
	}
	c.Redirect(http.StatusFound, ref.Path())
}

// ShowList handles GET /lists/:listName
func (h *TodoHandler) ShowList(c *gin.Context) {
	view, seeded, err := h.todo.NamedList(c.Request.Context(), currentUserID(c), c.Param("listName"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if seeded {
		c.Redirect(http.StatusFound, view.Ref.Path())
		return
	}
	h.render(c, view)
}

// DeleteList handles GET /deleteList/:listName
func (h *TodoHandler) DeleteList(c *gin.Context) {
	if err := h.todo.DeleteList(c.Request.Context(), currentUserID(c), c.Param("listName")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}
