package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"autoapply/models"
	"autoapply/services"
	"autoapply/utils"
)

// ApplyController exposes the application engine over HTTP. API runs are
// always headless and auto-approved; the interactive review gate only makes
// sense on the CLI where a human is watching the browser.
type ApplyController struct {
	profile *models.UserProfile
	llm     services.LLMClient
	factory services.BrowserFactory
	store   *services.ApplicationStore
	fetcher *services.ResumeFetcher

	headless               bool
	workdayAccountPassword string
}

func NewApplyController(profile *models.UserProfile, llm services.LLMClient, factory services.BrowserFactory,
	store *services.ApplicationStore, fetcher *services.ResumeFetcher, headless bool, workdayAccountPassword string) *ApplyController {
	return &ApplyController{
		profile:                profile,
		llm:                    llm,
		factory:                factory,
		store:                  store,
		fetcher:                fetcher,
		headless:               headless,
		workdayAccountPassword: workdayAccountPassword,
	}
}

type ApplyRequest struct {
	JobURL    string              `json:"job_url" binding:"required,url"`
	ResumeRef string              `json:"resume_ref"`
	Profile   *models.UserProfile `json:"profile"`
}

func (c *ApplyController) Apply(ctx *gin.Context) {
	var req ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.BadRequestError(ctx, "Invalid request data", err)
		return
	}

	platform, err := services.DetectPlatform(req.JobURL)
	if err != nil {
		utils.BadRequestError(ctx, "Unsupported job URL", err)
		return
	}
	utils.LogInfo("Starting application run", map[string]interface{}{
		"url":      req.JobURL,
		"platform": platform.Name,
	})

	profile := c.profile
	if req.Profile != nil {
		profile = req.Profile
	}

	engine := services.NewAutoApplyService(profile, c.llm, c.factory, services.AutoApproveGate{})
	engine.Headless = c.headless
	engine.WorkdayAccountPassword = c.workdayAccountPassword

	if req.ResumeRef != "" {
		path, err := c.fetcher.Fetch(req.ResumeRef)
		if err != nil {
			utils.BadRequestError(ctx, "Could not fetch resume", err)
			return
		}
		engine.ResumePath = path
	}

	result := engine.AutoFillApplication(ctx.Request.Context(), req.JobURL, false)

	if c.store != nil {
		if userID, exists := ctx.Get("user_id"); exists {
			if _, err := c.store.SaveRun(userID.(int), result); err != nil {
				utils.LogError("Failed to persist application run", err)
			}
		}
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	utils.SuccessResponse(ctx, status, "Application run finished", gin.H{
		"platform": platform,
		"run":      result,
	})
}

func (c *ApplyController) ListApplications(ctx *gin.Context) {
	if c.store == nil {
		utils.SuccessResponse(ctx, http.StatusOK, "No run history configured", []models.ApplicationRun{})
		return
	}

	userID, exists := ctx.Get("user_id")
	if !exists {
		utils.UnauthorizedError(ctx, "Authentication required")
		return
	}

	runs, err := c.store.ListRuns(userID.(int), 50)
	if err != nil {
		utils.InternalServerError(ctx, "Could not load application runs", err)
		return
	}
	utils.SuccessResponse(ctx, http.StatusOK, "Application runs", runs)
}
