package inventoryserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-inventory-server/internal/shared/errors"
)

// PluginAPI serves the content-creation-tool plugin. Every endpoint echoes
// what it received; nothing is persisted.
type PluginAPI struct {
	projectFolderPath string
	dccFilePath       string
}

// NewPluginAPI configures the paths returned by GET /file-path.
func NewPluginAPI(projectFolderPath, dccFilePath string) PluginAPI {
	return PluginAPI{projectFolderPath: projectFolderPath, dccFilePath: dccFilePath}
}

type filePathResponse struct {
	FilePath string `json:"file_path"`
}

// Get /file-path?projectpath=true|false
// Returns the project folder when projectpath is "true", else the DCC file
func (api *PluginAPI) FilePath(c *gin.Context) {
	path := api.dccFilePath
	if strings.EqualFold(c.DefaultQuery("projectpath", "false"), "true") {
		path = api.projectFolderPath
	}
	apierrors.RespondData(c, http.StatusOK, "File path retrieved", filePathResponse{FilePath: path})
}

// Post /transform
// Echoes an arbitrary JSON document
func (api *PluginAPI) Transform(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondInvalidJSON(c, err)
		return
	}
	if !json.Valid(body) {
		respondInvalidJSON(c, errors.New("request body is not valid JSON"))
		return
	}
	apierrors.RespondData(c, http.StatusOK, "Transform received", gin.H{"data": json.RawMessage(body)})
}

// Post /translation
func (api *PluginAPI) Translation(c *gin.Context) {
	api.echoField(c, "position", "Translation received")
}

// Post /rotation
func (api *PluginAPI) Rotation(c *gin.Context) {
	api.echoField(c, "rotation", "Rotation received")
}

// Post /scale
func (api *PluginAPI) Scale(c *gin.Context) {
	api.echoField(c, "scale", "Scale received")
}

// echoField returns body[field] under the same key, or null when absent.
func (api *PluginAPI) echoField(c *gin.Context, field, message string) {
	var payload map[string]json.RawMessage
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondInvalidJSON(c, err)
		return
	}
	value, ok := payload[field]
	if !ok {
		value = json.RawMessage("null")
	}
	apierrors.RespondData(c, http.StatusOK, message, gin.H{field: value})
}
