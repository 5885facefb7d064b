package daemon

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/xbattory/xbattory/pkg/config"
	"github.com/xbattory/xbattory/pkg/locator"
	"github.com/xbattory/xbattory/pkg/report"
	"github.com/xbattory/xbattory/pkg/uevent"
	"github.com/xbattory/xbattory/pkg/version"
)

func getConfig(c *gin.Context) {
	fc, err := config.NewRawFileConfigFromConfig(conf)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.IndentedJSON(http.StatusOK, fc)
}

// readFailed writes the error of a failed read. A missing or unreadable
// battery is reported as 503 so clients can tell it apart from a malformed
// status file.
func readFailed(c *gin.Context, what string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, locator.ErrNoBattery) || errors.Is(err, uevent.ErrIO) {
		status = http.StatusServiceUnavailable
	}
	logrus.Errorf("%s failed: %v", what, err)
	c.IndentedJSON(status, err.Error())
	_ = c.AbortWithError(status, err)
}

func getSnapshot(c *gin.Context) {
	s, err := readSnapshot()
	if err != nil {
		readFailed(c, "getSnapshot", err)
		return
	}

	c.IndentedJSON(http.StatusOK, report.New(s, report.ThresholdsFromConfig(conf)))
}

func getUevent(c *gin.Context) {
	r, err := readRecord()
	if err != nil {
		readFailed(c, "getUevent", err)
		return
	}

	c.IndentedJSON(http.StatusOK, r)
}

func getHealth(c *gin.Context) {
	s, err := readSnapshot()
	if err != nil {
		readFailed(c, "getHealth", err)
		return
	}

	c.IndentedJSON(http.StatusOK, report.New(s, report.ThresholdsFromConfig(conf)).HealthSummary())
}

func getVersion(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, version.Version)
}
