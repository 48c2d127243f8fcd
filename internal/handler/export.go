package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/twentyq/api/internal/game"
	"github.com/twentyq/api/internal/model"
	"gorm.io/gorm"
)

// ExportHandler serves downloadable transcripts of finished games.
type ExportHandler struct {
	db *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{db: db}
}

func (h *ExportHandler) Export(c *gin.Context) {
	if h.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Game history is not persisted"})
		return
	}

	sessionID := c.Param("sessionId")
	format := c.DefaultQuery("format", "json")

	var record model.GameRecord
	result := h.db.First(&record, "session_id = ?", sessionID)
	if result.Error != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	switch format {
	case "json":
		h.exportJSON(c, &record)
	case "csv":
		h.exportCSV(c, &record)
	case "md", "markdown":
		h.exportMarkdown(c, &record)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format. Use json, csv, or md"})
	}
}

func questionLog(record *model.GameRecord) []game.QuestionEntry {
	var entries []game.QuestionEntry
	if len(record.QuestionLog) > 0 {
		json.Unmarshal(record.QuestionLog, &entries)
	}
	return entries
}

func (h *ExportHandler) exportJSON(c *gin.Context, record *model.GameRecord) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=game-%s.json", record.SessionID))
	c.JSON(http.StatusOK, record)
}

func (h *ExportHandler) exportCSV(c *gin.Context, record *model.GameRecord) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write([]string{"Sequence", "Question", "Answer", "Asked By"})
	for _, entry := range questionLog(record) {
		askedBy := "player"
		if entry.AskedByLLM {
			askedBy = "llm"
		}
		writer.Write([]string{
			fmt.Sprintf("%d", entry.Sequence),
			entry.Question,
			entry.Answer,
			askedBy,
		})
	}
	writer.Flush()

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=game-%s.csv", record.SessionID))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *ExportHandler) exportMarkdown(c *gin.Context, record *model.GameRecord) {
	var buf bytes.Buffer

	outcome := "Lost"
	if record.Won {
		outcome = "Won"
	}
	buf.WriteString(fmt.Sprintf("# Twenty Questions: %s\n\n", record.Word))
	buf.WriteString(fmt.Sprintf("**Played:** %s\n\n", record.CreatedAt.Format("2006-01-02 15:04:05")))
	buf.WriteString(fmt.Sprintf("**Category:** %s | **Difficulty:** %s | **Mode:** %s\n\n",
		record.Category, record.Difficulty, record.Mode))
	buf.WriteString(fmt.Sprintf("**Outcome:** %s after %d questions, %d hints used\n\n",
		outcome, record.QuestionCount, record.HintsUsed))

	buf.WriteString("## Questions\n\n")
	for _, entry := range questionLog(record) {
		buf.WriteString(fmt.Sprintf("%d. **Q:** %s\n   **A:** %s\n\n", entry.Sequence, entry.Question, entry.Answer))
	}

	if len(record.Hints) > 0 {
		buf.WriteString("## Hints\n\n")
		for i, hint := range record.Hints {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, hint))
		}
	}

	c.Header("Content-Type", "text/markdown")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=game-%s.md", record.SessionID))
	c.Data(http.StatusOK, "text/markdown", buf.Bytes())
}
