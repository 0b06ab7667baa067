package service

import (
	"time"

	"github.com/outofband/tracker-bfa-go/internal/domain"

	"github.com/google/uuid"
)

// SampleProjects builds the starter dataset seeded into an empty business
// on first login, and served as a read-path fallback when the data backend
// is unreachable. Each call mints fresh IDs and timestamps.
func SampleProjects(businessID, createdBy string, now time.Time) []domain.Project {
	return []domain.Project{
		{
			ID:                        uuid.NewString(),
			ProjectName:               "Customer Portal Enhancement",
			ProjectDescription:        "Improve the customer self-service portal with new features including advanced search, user dashboard improvements, and mobile responsiveness enhancements.",
			Status:                    domain.StatusInProgress,
			EffortLevel:               domain.EffortHigh,
			TimeCommitmentPerWeek:     15,
			ProjectOwner:              "John Smith",
			SupportManagementResource: "Sarah Johnson",
			SupportRole:               "Technical Lead",
			TargetCompletionDate:      "2024-08-15",
			StartDate:                 "2024-07-01",
			ExpectedOutcomes:          "Improved customer satisfaction, reduced support tickets, better user experience",
			TrainingNeeded:            "React advanced patterns, API integration best practices",
			ToolProcessChange:         "New deployment pipeline, updated testing framework",
			MeetingCadence:            "Weekly standup, bi-weekly review",
			CommChannel:               "#customer-portal-team",
			EscalationPath:            "Sarah Johnson -> Mike Davis -> CTO",
			Dependencies:              "API team completion of user endpoints, Design team mockups",
			KeyMilestones:             "Phase 1: Search feature (July 15), Phase 2: Dashboard (Aug 1), Phase 3: Mobile (Aug 15)",
			RisksBlockers:             "API integration delays, potential scope creep from stakeholders",
			ActionItems:               "1. Complete search API integration, 2. Review mobile designs, 3. Setup testing environment",
			LatestUpdate:              "Search feature 80% complete, mobile designs approved, testing environment ready",
			ProjectDocsLinks:          "https://wiki.company.com/customer-portal, https://github.com/company/portal-docs",
			BusinessID:                businessID,
			CreatedBy:                 createdBy,
			CreatedAt:                 now,
			UpdatedAt:                 now,
		},
		{
			ID:                        uuid.NewString(),
			ProjectName:               "Support Ticket Automation",
			ProjectDescription:        "Automate common support ticket responses using AI and machine learning to reduce response time and improve customer satisfaction.",
			Status:                    domain.StatusReview,
			EffortLevel:               domain.EffortMedium,
			TimeCommitmentPerWeek:     8,
			ProjectOwner:              "Sarah Johnson",
			SupportManagementResource: "Mike Davis",
			SupportRole:               "Project Manager",
			TargetCompletionDate:      "2024-07-30",
			StartDate:                 "2024-06-15",
			ExpectedOutcomes:          "Reduced response time by 50%, improved customer satisfaction scores",
			TrainingNeeded:            "AI/ML basics, ticket system API",
			ToolProcessChange:         "Integration with existing ticket system",
			MeetingCadence:            "Bi-weekly check-ins",
			CommChannel:               "#support-automation",
			EscalationPath:            "Mike Davis -> Director of Support",
			Dependencies:              "AI team model training, Legal approval for automated responses",
			KeyMilestones:             "Model training (June 30), Integration testing (July 15), Go-live (July 30)",
			RisksBlockers:             "Model accuracy concerns, legal compliance requirements",
			ActionItems:               "1. Complete model testing, 2. Legal review, 3. Staff training materials",
			LatestUpdate:              "Model testing complete, awaiting legal approval, training materials 90% done",
			ProjectDocsLinks:          "https://docs.company.com/support-automation",
			BusinessID:                businessID,
			CreatedBy:                 createdBy,
			CreatedAt:                 now,
			UpdatedAt:                 now,
		},
		{
			ID:                        uuid.NewString(),
			ProjectName:               "Knowledge Base Restructure",
			ProjectDescription:        "Reorganize and update the internal knowledge base to improve searchability and user experience for both staff and customers.",
			Status:                    domain.StatusTodo,
			EffortLevel:               domain.EffortLow,
			TimeCommitmentPerWeek:     5,
			ProjectOwner:              "Mike Davis",
			SupportManagementResource: "Lisa Chen",
			SupportRole:               "Content Manager",
			TargetCompletionDate:      "2024-09-01",
			StartDate:                 "2024-07-10",
			ExpectedOutcomes:          "Improved search functionality, better content organization, reduced time to find information",
			TrainingNeeded:            "Content management system, SEO basics",
			ToolProcessChange:         "New content management workflow",
			MeetingCadence:            "Weekly content review",
			CommChannel:               "#knowledge-base",
			EscalationPath:            "Lisa Chen -> Head of Documentation",
			Dependencies:              "Content audit completion, New CMS selection",
			KeyMilestones:             "Content audit (July 20), Structure design (Aug 1), Migration (Aug 15), Testing (Aug 30)",
			RisksBlockers:             "Large volume of legacy content, resource availability",
			ActionItems:               "1. Complete content audit, 2. Design new structure, 3. Create migration plan",
			LatestUpdate:              "Content audit 60% complete, initial structure design in progress",
			ProjectDocsLinks:          "https://wiki.company.com/kb-restructure",
			BusinessID:                businessID,
			CreatedBy:                 createdBy,
			CreatedAt:                 now,
			UpdatedAt:                 now,
		},
		{
			ID:                        uuid.NewString(),
			ProjectName:               "Mobile App Bug Fixes",
			ProjectDescription:        "Fix critical bugs in the mobile application affecting user login, data synchronization, and push notifications.",
			Status:                    domain.StatusCompleted,
			EffortLevel:               domain.EffortHigh,
			TimeCommitmentPerWeek:     20,
			ProjectOwner:              "Lisa Chen",
			SupportManagementResource: "John Smith",
			SupportRole:               "QA Lead",
			TargetCompletionDate:      "2024-07-10",
			StartDate:                 "2024-06-01",
			ExpectedOutcomes:          "Stable mobile app, improved user experience, reduced crash reports",
			TrainingNeeded:            "Mobile debugging tools, crash analysis",
			ToolProcessChange:         "Enhanced testing procedures",
			MeetingCadence:            "Daily standups during critical phase",
			CommChannel:               "#mobile-bugs",
			EscalationPath:            "John Smith -> Mobile Team Lead",
			Dependencies:              "QA team availability, App store approval process",
			KeyMilestones:             "Bug identification (June 10), Fixes implementation (June 25), Testing (July 5), Release (July 10)",
			RisksBlockers:             "Complex legacy code, app store review delays",
			ActionItems:               "All action items completed",
			LatestUpdate:              "Project completed successfully, app released with all critical bugs fixed",
			ProjectDocsLinks:          "https://github.com/company/mobile-app/issues",
			BusinessID:                businessID,
			CreatedBy:                 createdBy,
			CreatedAt:                 now,
			UpdatedAt:                 now,
		},
		{
			ID:                        uuid.NewString(),
			ProjectName:               "Security Audit Implementation",
			ProjectDescription:        "Implement security recommendations from the recent third-party security audit to enhance system security and compliance.",
			Status:                    domain.StatusInProgress,
			EffortLevel:               domain.EffortHigh,
			TimeCommitmentPerWeek:     12,
			ProjectOwner:              "Alex Rodriguez",
			SupportManagementResource: "Sarah Johnson",
			SupportRole:               "Security Coordinator",
			TargetCompletionDate:      "2024-08-30",
			StartDate:                 "2024-07-15",
			ExpectedOutcomes:          "Enhanced security posture, compliance with industry standards, reduced security risks",
			TrainingNeeded:            "Security best practices, compliance requirements",
			ToolProcessChange:         "New security monitoring tools, updated access controls",
			MeetingCadence:            "Weekly security review",
			CommChannel:               "#security-audit",
			EscalationPath:            "Sarah Johnson -> CISO",
			Dependencies:              "Security team availability, Budget approval for new tools",
			KeyMilestones:             "Access control update (Aug 1), Monitoring setup (Aug 15), Final review (Aug 30)",
			RisksBlockers:             "Complex system integrations, potential service disruptions",
			ActionItems:               "1. Update access controls, 2. Install monitoring tools, 3. Staff training",
			LatestUpdate:              "Access control updates 70% complete, monitoring tools selected and ordered",
			ProjectDocsLinks:          "https://security.company.com/audit-2024",
			BusinessID:                businessID,
			CreatedBy:                 createdBy,
			CreatedAt:                 now,
			UpdatedAt:                 now,
		},
	}
}
