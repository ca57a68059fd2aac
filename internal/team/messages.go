package team

import "fmt"

func memberAddedSubject(t *Team) string {
	return fmt.Sprintf("Team '%s' has a new member!", t.Title)
}

func memberAddedBody(t *Team, memberName string) string {
	return fmt.Sprintf("User '%s' has joined team '%s'.", memberName, t.Title)
}

func youWereAddedBody(t *Team) string {
	return fmt.Sprintf("You have been added to team '%s'.", t.Title)
}

func leaderPendingBody(t *Team, memberName string, pending int) string {
	return fmt.Sprintf(
		"User '%s' joined team '%s'. You now have %d request(s) pending your review.",
		memberName, t.Title, pending,
	)
}

func memberRemovedSubject(t *Team) string {
	return fmt.Sprintf("Team '%s' lost a member!", t.Title)
}

func memberRemovedBody(t *Team, memberName string) string {
	return fmt.Sprintf("User '%s' has left team '%s'.", memberName, t.Title)
}

func youWereRemovedBody(t *Team) string {
	return fmt.Sprintf("You have been removed from team '%s'.", t.Title)
}

func leaderChangedSubject(t *Team) string {
	return fmt.Sprintf("Team '%s' has a new leader!", t.Title)
}

func leaderChangedBody(t *Team, leaderName string) string {
	return fmt.Sprintf("User '%s' is now the leader of team '%s'.", leaderName, t.Title)
}
