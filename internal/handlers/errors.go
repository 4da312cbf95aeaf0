package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/braids-scheduler/internal/httperr"
	"github.com/BruksfildServices01/braids-scheduler/internal/state"
)

var messages = map[string]string{
	"invalid_request":       "Dados inválidos.",
	"invalid_date":          "Data inválida.",
	"invalid_date_or_time":  "Data ou hora inválida.",
	"invalid_month":         "Mês inválido.",
	"invalid_year":          "Ano inválido.",
	"date_in_past":          "Não é possível agendar em uma data passada.",
	"slot_unavailable":      "Horário indisponível.",
	"slot_busy":             "Horário sendo reservado por outra pessoa, tente novamente.",
	"time_conflict":         "Conflito de horário.",
	"invalid_client_data":   "Nome e e-mail são obrigatórios.",
	"invalid_service_type":  "Técnica inválida.",
	"invalid_price":         "Valor inválido.",
	"invalid_duration":      "Duração inválida.",
	"invalid_state":         "Agendamento não pode ser alterado.",
	"invalid_status":        "Status inválido.",
	"invalid_stage":         "Etapa inválida.",
	"invalid_type":          "Tipo inválido.",
	"invalid_amount":        "Valor inválido.",
	"invalid_settings":      "Configuração inválida.",
	"email_already_exists":  "Já existe uma cliente com este e-mail.",
	"client_not_found":      "Cliente não encontrada.",
	"appointment_not_found": "Agendamento não encontrado.",
	"report_not_found":      "Relatório não encontrado.",
	"task_not_found":        "Tarefa não encontrada.",
}

// writeError maps use case errors onto the httperr envelope.
func writeError(c *gin.Context, err error) {
	if errors.Is(err, state.ErrPersistence) {
		log.Printf("persistence error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		httperr.Unavailable(c, "storage_unavailable", "Não foi possível salvar, tente novamente.")
		return
	}

	code, ok := httperr.BusinessCode(err)
	if !ok {
		log.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	msg := messages[code]
	if msg == "" {
		msg = code
	}

	httperr.Write(c, httperr.Status(code), code, msg)
}

func badRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", messages["invalid_request"])
}
