package model

// HREmployee is one row of the unarchived employee picker list.
type HREmployee struct {
	SystemID   int64   `json:"system_id"`
	FullNameEN *string `json:"fullname_en"`
	FullNameAR *string `json:"fullname_ar"`
	EmpNo      *string `json:"empno"`
}

// HREmployeeDetails is the full master-data record used to pre-fill the
// archive form.
type HREmployeeDetails struct {
	SystemID       int64   `json:"system_id"`
	FullNameEN     *string `json:"fullname_en"`
	FullNameAR     *string `json:"fullname_ar"`
	EmpNo          *string `json:"empno"`
	Department     *string `json:"department"`
	Section        *string `json:"section"`
	Email          *string `json:"email"`
	Mobile         *string `json:"mobile"`
	SupervisorName *string `json:"supervisorname"`
	Nationality    *string `json:"nationality"`
	JobName        *string `json:"job_name"`
}
