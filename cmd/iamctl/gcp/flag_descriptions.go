package gcp

const (
	projectFlagDescription      = `ID of the Google cloud project. Defaults to the 'project' configuration setting`
	folderFlagDescription       = `Numeric ID of the Google cloud folder`
	organizationFlagDescription = `Numeric ID of the Google cloud organization`

	roleFlagDescription = `Role to grant, for example 'roles/storage.admin'. The predefined basic roles
can also be given as 'owner', 'editor' or 'viewer'.`

	memberFlagDescription = `Principal to grant the role to. Either the identifier of the principal,
in which case --member-type is required, or the complete member such as
'user:alice@example.com' or 'serviceAccount:svc@my-project.iam.gserviceaccount.com'.`

	memberTypeFlagDescription = `Type of the principal. Valid options are:
user:            A Google account email address.
group:           A Google group email address.
service_account: A service account email address.
domain:          A Google Workspace or Cloud Identity domain.
`

	dryRunFlagDescription = `Show the change that would be made to the policy without writing it`
)
