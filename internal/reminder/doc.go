// Package reminder implements the authorize-and-remind workflow.
//
// The workflow turns a manual OAuth2 consent flow into a created calendar
// event in four ordered steps:
//
//  1. BuildAuthContext binds client credentials into an AuthContext
//  2. ConsentURL produces the URL the user visits to grant access
//  3. ExchangeCode trades the authorization code for a TokenSet
//  4. CreateReminder inserts a popup-reminder event into the primary calendar
//
// All network I/O is delegated to a CalendarAuthClient. The workflow itself
// holds no state beyond the AuthContext owned by the caller.
//
// Example usage:
//
//	wf := reminder.NewWorkflow(client, logger)
//	authCtx, err := wf.BuildAuthContext(creds)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(wf.ConsentURL(authCtx, nil))
//	if _, err := wf.ExchangeCode(ctx, authCtx, code); err != nil {
//	    return err
//	}
//	event, err := wf.CreateReminder(ctx, authCtx, req)
package reminder
